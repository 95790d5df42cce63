package graph

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/google/renameio"
)

// ErrCorrupted is returned by Load when the file's magic, version, or
// checksum don't match what was written.
var ErrCorrupted = fmt.Errorf("graph: index file is corrupted")

// Save serializes the graph to path. The write is atomic: the full file is
// written to a temporary sibling path and renamed into place via
// renameio, so a crash mid-write never leaves a half-written index at
// path, replacing the teacher's hand-rolled create-write-rename helper
// with the ecosystem's equivalent (see DESIGN.md).
func (g *Graph[K, V]) Save(path string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	var body bytes.Buffer
	bw := bufio.NewWriter(&body)

	if err := g.writeNodes(bw); err != nil {
		return fmt.Errorf("graph: write nodes: %w", err)
	}
	if err := g.writeLinks(bw); err != nil {
		return fmt.Errorf("graph: write links: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("graph: flush: %w", err)
	}

	checksum := crc32.ChecksumIEEE(body.Bytes())

	t, err := renameio.TempFile("", path)
	if err != nil {
		return fmt.Errorf("graph: create temp file: %w", err)
	}
	defer t.Cleanup()

	out := bufio.NewWriter(t)
	if err := g.writeHeader(out, checksum); err != nil {
		return fmt.Errorf("graph: write header: %w", err)
	}
	if _, err := out.Write(body.Bytes()); err != nil {
		return fmt.Errorf("graph: write body: %w", err)
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("graph: flush temp file: %w", err)
	}
	return t.CloseAtomicallyReplace()
}

func (g *Graph[K, V]) writeHeader(w io.Writer, checksum uint32) error {
	if _, err := w.Write([]byte(magic)); err != nil {
		return err
	}
	fields := []any{
		formatVersion,
		uint32(g.store.len()),
		uint32(g.cfg.M),
		uint32(g.cfg.EfConstruction),
		uint32(g.cfg.EfSearch),
		int32(g.entryPoint),
		int32(g.maxLevel),
		checksum,
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	return nil
}

// writeNodes writes exactly one entry per node slot: its ID, whether it is
// tombstoned, and its level; then, for a tombstoned node, its tombstone
// version, and otherwise its declared dimensionality, encoded vector, JSON
// metadata, and item version.
func (g *Graph[K, V]) writeNodes(w io.Writer) error {
	var err error
	g.store.each(func(_ int32, n *Node[K, V]) {
		if err != nil {
			return
		}
		err = g.writeNode(w, n)
	})
	return err
}

func (g *Graph[K, V]) writeNode(w io.Writer, n *Node[K, V]) error {
	idBytes, e := g.cfg.IDCodec.Encode(n.ID())
	if e != nil {
		return e
	}
	if e := writeBytes(w, idBytes); e != nil {
		return e
	}

	if n.Deleted() {
		if e := binary.Write(w, binary.LittleEndian, deletedMarker); e != nil {
			return e
		}
		if e := binary.Write(w, binary.LittleEndian, int32(n.Level())); e != nil {
			return e
		}
		version, _ := g.lookup.tombstoneVersion(n.ID())
		return binary.Write(w, binary.LittleEndian, version)
	}
	if e := binary.Write(w, binary.LittleEndian, liveMarker); e != nil {
		return e
	}

	item := n.Item()
	if item == nil {
		return fmt.Errorf("graph: live node %v has no item", n.ID())
	}

	if e := binary.Write(w, binary.LittleEndian, int32(n.Level())); e != nil {
		return e
	}
	if e := binary.Write(w, binary.LittleEndian, int32(item.Dimensions)); e != nil {
		return e
	}

	vecBytes, e := g.cfg.ItemCodec.Encode(item.Vector)
	if e != nil {
		return e
	}
	if e := writeBytes(w, vecBytes); e != nil {
		return e
	}

	metaBytes, e := json.Marshal(item.Metadata)
	if e != nil {
		return e
	}
	if e := writeBytes(w, metaBytes); e != nil {
		return e
	}
	return binary.Write(w, binary.LittleEndian, item.Version)
}

// writeLinks writes, for each node in a single pass, its full per-level
// adjacency in one inner loop — level 0 through its own level — rather
// than revisiting the node slice once per level.
func (g *Graph[K, V]) writeLinks(w io.Writer) error {
	var err error
	g.store.each(func(idx int32, n *Node[K, V]) {
		if err != nil {
			return
		}
		for lvl := 0; lvl <= n.Level(); lvl++ {
			ids := n.neighbors(lvl)
			if e := binary.Write(w, binary.LittleEndian, uint32(len(ids))); e != nil {
				err = e
				return
			}
			for _, id := range ids {
				if e := binary.Write(w, binary.LittleEndian, id); e != nil {
					err = e
					return
				}
			}
		}
	})
	return err
}

func writeBytes(w io.Writer, b []byte) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func readBytes(r io.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Load replaces the graph's contents with what was persisted at path.
// Must be called on a freshly constructed, empty Graph.
func (g *Graph[K, V]) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("graph: open: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	magicBuf := make([]byte, len(magic))
	if _, err := io.ReadFull(r, magicBuf); err != nil || string(magicBuf) != magic {
		return ErrCorrupted
	}

	var version, nodeCount, m, efc, efs uint32
	var entryPoint, maxLevel int32
	var checksum uint32
	for _, field := range []any{&version, &nodeCount, &m, &efc, &efs, &entryPoint, &maxLevel, &checksum} {
		if err := binary.Read(r, binary.LittleEndian, field); err != nil {
			return ErrCorrupted
		}
	}
	if version > formatVersion {
		return fmt.Errorf("%w: unsupported format version %d", ErrCorrupted, version)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("graph: read body: %w", err)
	}
	if crc32.ChecksumIEEE(body) != checksum {
		return ErrCorrupted
	}

	br := bytes.NewReader(body)

	g.mu.Lock()
	defer g.mu.Unlock()

	g.cfg.M = int(m)
	g.cfg.EfConstruction = int(efc)
	g.cfg.EfSearch = int(efs)
	g.lambda = levelLambda(g.cfg.M)
	g.store = newStore[K, V](int(nodeCount))
	g.lookup = newLookup[K](int(nodeCount))
	g.entryPoint = entryPoint
	g.maxLevel = int(maxLevel)

	nodes := make([]*Node[K, V], nodeCount)
	for i := uint32(0); i < nodeCount; i++ {
		n, id, tombstoneVer, isDeleted, err := g.readNode(br)
		if err != nil {
			return fmt.Errorf("graph: read node %d: %w", i, err)
		}
		nodes[i] = n
		g.store.slots[i].Store(n)
		g.store.n++
		if isDeleted {
			g.lookup.setTombstone(id, tombstoneVer)
		} else {
			g.lookup.set(id, int32(i))
		}
	}

	for i := uint32(0); i < nodeCount; i++ {
		n := nodes[i]
		for lvl := 0; lvl <= n.Level(); lvl++ {
			var count uint32
			if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
				return fmt.Errorf("graph: read link count: %w", err)
			}
			ids := make([]int32, count)
			for j := uint32(0); j < count; j++ {
				if err := binary.Read(br, binary.LittleEndian, &ids[j]); err != nil {
					return fmt.Errorf("graph: read link: %w", err)
				}
			}
			n.setNeighbors(lvl, ids)
		}
	}

	return nil
}

func (g *Graph[K, V]) readNode(r io.Reader) (n *Node[K, V], id K, tombstoneVer int64, isDeleted bool, err error) {
	idBytes, err := readBytes(r)
	if err != nil {
		return nil, id, 0, false, err
	}
	id, err = g.cfg.IDCodec.Decode(idBytes)
	if err != nil {
		return nil, id, 0, false, err
	}

	var marker uint8
	if err = binary.Read(r, binary.LittleEndian, &marker); err != nil {
		return nil, id, 0, false, err
	}

	if marker == deletedMarker {
		var level int32
		if err = binary.Read(r, binary.LittleEndian, &level); err != nil {
			return nil, id, 0, false, err
		}
		if err = binary.Read(r, binary.LittleEndian, &tombstoneVer); err != nil {
			return nil, id, 0, false, err
		}
		n = newNode[K, V](id, int(level), nil)
		n.markDeleted()
		return n, id, tombstoneVer, true, nil
	}

	var level, dims int32
	if err = binary.Read(r, binary.LittleEndian, &level); err != nil {
		return nil, id, 0, false, err
	}
	if err = binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return nil, id, 0, false, err
	}
	vecBytes, err := readBytes(r)
	if err != nil {
		return nil, id, 0, false, err
	}
	vec, err := g.cfg.ItemCodec.Decode(vecBytes)
	if err != nil {
		return nil, id, 0, false, err
	}
	metaBytes, err := readBytes(r)
	if err != nil {
		return nil, id, 0, false, err
	}
	var meta map[string]any
	if len(metaBytes) > 0 {
		if err = json.Unmarshal(metaBytes, &meta); err != nil {
			return nil, id, 0, false, err
		}
	}
	var itemVer int64
	if err = binary.Read(r, binary.LittleEndian, &itemVer); err != nil {
		return nil, id, 0, false, err
	}

	item := &Item[K, V]{ID: id, Vector: vec, Dimensions: int(dims), Metadata: meta, Version: itemVer}
	n = newNode[K, V](id, int(level), item)
	return n, id, 0, false, nil
}
