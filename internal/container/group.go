package container

import "strings"

// ensurePathGroup splits a "/"-separated path into its parent group
// chain (creating groups as needed) and the final path component,
// returning the parent group and that component name. It is used by
// both WriteDataset (component is a dataset name) and SetAttr
// (component is an attribute name).
func (c *Container) ensurePathGroup(path string) (*groupNode, string) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return c.root, ""
	}
	g := c.root
	for _, p := range parts[:len(parts)-1] {
		child, ok := g.Children[p]
		if !ok {
			child = newGroupNode(g.Path + "/" + p)
			g.Children[p] = child
		}
		g = child
	}
	return g, parts[len(parts)-1]
}

// lookupGroup walks to the group at path without creating anything,
// returning (nil, false) if any component is missing.
func (c *Container) lookupGroup(path string) (*groupNode, bool) {
	parts := splitPath(path)
	g := c.root
	for _, p := range parts {
		child, ok := g.Children[p]
		if !ok {
			return nil, false
		}
		g = child
	}
	return g, true
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// EnsureGroup creates the group at path, and any missing parent
// groups, if absent.
func (c *Container) EnsureGroup(path string) {
	parts := splitPath(path)
	g := c.root
	for _, p := range parts {
		child, ok := g.Children[p]
		if !ok {
			child = newGroupNode(g.Path + "/" + p)
			g.Children[p] = child
		}
		g = child
	}
}

// HasGroup reports whether a group exists at path.
func (c *Container) HasGroup(path string) bool {
	_, ok := c.lookupGroup(path)
	return ok
}

// ChildNames returns the immediate child group names under path, for
// directory-style iteration (e.g. listing bins under /Families, or
// accessions under /Families/<AA>).
func (c *Container) ChildNames(path string) ([]string, error) {
	g, ok := c.lookupGroup(path)
	if !ok {
		return nil, notFound(path)
	}
	names := make([]string, 0, len(g.Children))
	for name := range g.Children {
		names = append(names, name)
	}
	return names, nil
}

// DatasetNames returns the dataset names directly under path.
func (c *Container) DatasetNames(path string) ([]string, error) {
	g, ok := c.lookupGroup(path)
	if !ok {
		return nil, notFound(path)
	}
	names := make([]string, 0, len(g.Datasets))
	for name := range g.Datasets {
		names = append(names, name)
	}
	return names, nil
}

// Link creates a soft link: name under group at groupPath resolves to
// targetPath (e.g. a family's clade association recorded under
// /Partitions/<n>).
func (c *Container) Link(groupPath, name, targetPath string) {
	c.EnsureGroup(groupPath)
	g, _ := c.lookupGroup(groupPath)
	g.Links[name] = targetPath
}

// ResolveLink follows a soft link, returning the target group path.
func (c *Container) ResolveLink(groupPath, name string) (string, error) {
	g, ok := c.lookupGroup(groupPath)
	if !ok {
		return "", notFound(groupPath)
	}
	target, ok := g.Links[name]
	if !ok {
		return "", notFound(groupPath + "/" + name)
	}
	return target, nil
}
