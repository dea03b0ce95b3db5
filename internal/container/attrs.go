package container

// SetAttr sets a scalar or small-slice attribute at path (a group or
// dataset path with the attribute name as its final component), e.g.
// SetAttr("/Families/DF/DF000000001/version", 3).
func (c *Container) SetAttr(path string, value interface{}) error {
	if !c.writable {
		return &Error{Kind: KindLocked, Path: path}
	}
	group, name := c.ensurePathGroup(path)
	group.Attrs[name] = value
	return nil
}

// GetAttr reads back an attribute set with SetAttr. The returned bool
// is false if the attribute is absent — callers use this to implement
// "absent value" semantics rather than treating zero values as unset,
// per spec.md §4.3.
func (c *Container) GetAttr(path string) (interface{}, bool, error) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false, wrongType(path)
	}
	groupPath := "/" + pathJoin(parts[:len(parts)-1])
	name := parts[len(parts)-1]
	g, ok := c.lookupGroup(groupPath)
	if !ok {
		return nil, false, nil
	}
	v, ok := g.Attrs[name]
	return v, ok, nil
}

// GetDataset reads and decompresses the dataset at path.
func (c *Container) GetDataset(path string) ([]byte, error) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, wrongType(path)
	}
	groupPath := "/" + pathJoin(parts[:len(parts)-1])
	name := parts[len(parts)-1]
	g, ok := c.lookupGroup(groupPath)
	if !ok {
		return nil, notFound(path)
	}
	meta, ok := g.Datasets[name]
	if !ok {
		return nil, notFound(path)
	}
	return c.readDataset(path, meta)
}

// HasDataset reports whether a dataset exists at path.
func (c *Container) HasDataset(path string) bool {
	parts := splitPath(path)
	if len(parts) == 0 {
		return false
	}
	groupPath := "/" + pathJoin(parts[:len(parts)-1])
	name := parts[len(parts)-1]
	g, ok := c.lookupGroup(groupPath)
	if !ok {
		return false
	}
	_, ok = g.Datasets[name]
	return ok
}

// AttrNames returns the attribute names set directly on the group at
// path, for callers that need to enumerate attributes the caller
// doesn't already know the names of (e.g. preserving unknown fields
// across a decode/encode round trip).
func (c *Container) AttrNames(path string) ([]string, error) {
	g, ok := c.lookupGroup(path)
	if !ok {
		return nil, notFound(path)
	}
	names := make([]string, 0, len(g.Attrs))
	for name := range g.Attrs {
		names = append(names, name)
	}
	return names, nil
}

func pathJoin(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "/"
		}
		out += p
	}
	return out
}
