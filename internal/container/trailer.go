package container

import "encoding/gob"

// datasetMeta locates one dataset's compressed bytes within the file.
type datasetMeta struct {
	Offset     int64
	Length     int64 // compressed length on disk
	RawLength  int64 // decompressed length
	Compressed bool
}

// groupNode is one node of the container's group tree. The root group
// has Path == "/".
type groupNode struct {
	Path     string
	Attrs    map[string]interface{}
	Children map[string]*groupNode
	Datasets map[string]datasetMeta
	Links    map[string]string // name -> target group path (soft link)
}

func newGroupNode(path string) *groupNode {
	return &groupNode{
		Path:     path,
		Attrs:    make(map[string]interface{}),
		Children: make(map[string]*groupNode),
		Datasets: make(map[string]datasetMeta),
		Links:    make(map[string]string),
	}
}

// trailer is the whole container's directory, gob-encoded after the
// last dataset block and located via the 8-byte footer.
type trailer struct {
	Root *groupNode
}

func init() {
	// Attribute values are scalars or small slices thereof; register
	// every concrete type the schema layer stores so gob can encode
	// the interface{} values inside groupNode.Attrs.
	gob.Register("")
	gob.Register(int(0))
	gob.Register(int64(0))
	gob.Register(uint32(0))
	gob.Register(float64(0))
	gob.Register(false)
	gob.Register([]string{})
	gob.Register([]int{})
	gob.Register([]int64(nil))
	gob.Register([]uint32(nil))
}
