package graph

// Binary persistence format. The teacher's own reference writer
// (internal/index/hnsw/persistence.go) walks the adjacency lists with one
// pass over the full node slice per level, and writes each node's ID and
// item payload once per level it visits rather than once per node — on a
// graph with L levels that means an ID appearing in L link-section passes
// gets serialized L times. This format corrects both: a node's identity
// and payload are written exactly once (in the node section), and its
// per-level adjacency is written in a single pass over that one node's own
// level range (in the link section), not a separate pass per level over
// every node.
const (
	magic          = "HGRAPH01"
	formatVersion  = uint32(1)
	deletedMarker  = uint8(1)
	liveMarker     = uint8(0)
)
