// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package rospkg

import (
	"fmt"
	"sort"
)

// Package is one crawled package.
type Package struct {
	Name     string
	Path     string
	Manifest *Manifest
}

// Catalog is a snapshot of the packages found by a crawl.
type Catalog struct {
	packages map[string]*Package
	order    []string
}

func newCatalog() *Catalog {
	return &Catalog{packages: make(map[string]*Package)}
}

// NewCatalog builds a catalog from already-resolved packages. Later
// duplicates are ignored.
func NewCatalog(pkgs ...*Package) *Catalog {
	c := newCatalog()
	for _, p := range pkgs {
		c.add(p)
	}
	return c
}

func (c *Catalog) add(p *Package) bool {
	if _, ok := c.packages[p.Name]; ok {
		return false
	}
	c.packages[p.Name] = p
	c.order = append(c.order, p.Name)
	return true
}

// List returns every package name, sorted.
func (c *Catalog) List() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	sort.Strings(out)
	return out
}

// Len returns the number of packages.
func (c *Catalog) Len() int {
	return len(c.packages)
}

func (c *Catalog) get(name string) (*Package, error) {
	p, ok := c.packages[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrPackageNotFound)
	}
	return p, nil
}

// Path returns the directory of a package.
func (c *Catalog) Path(name string) (string, error) {
	p, err := c.get(name)
	if err != nil {
		return "", err
	}
	return p.Path, nil
}

// Manifest returns the parsed package.xml of a package.
func (c *Catalog) Manifest(name string) (*Manifest, error) {
	p, err := c.get(name)
	if err != nil {
		return nil, err
	}
	return p.Manifest, nil
}

// DependsOn returns the sorted names of every package that depends on name,
// directly or through other packages.
func (c *Catalog) DependsOn(name string) ([]string, error) {
	if _, err := c.get(name); err != nil {
		return nil, err
	}

	reverse := make(map[string][]string)
	for _, p := range c.packages {
		for _, dep := range p.Manifest.Dependencies() {
			reverse[dep] = append(reverse[dep], p.Name)
		}
	}

	seen := map[string]struct{}{name: {}}
	queue := []string{name}
	out := []string{}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dependent := range reverse[cur] {
			if _, ok := seen[dependent]; ok {
				continue
			}
			seen[dependent] = struct{}{}
			out = append(out, dependent)
			queue = append(queue, dependent)
		}
	}
	sort.Strings(out)
	return out, nil
}
