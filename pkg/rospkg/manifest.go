// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package rospkg

import (
	"encoding/xml"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Manifest is a parsed package.xml (formats 1 to 3).
type Manifest struct {
	XMLName     xml.Name `xml:"package"`
	Format      string   `xml:"format,attr"`
	Name        string   `xml:"name"`
	Version     string   `xml:"version"`
	Description string   `xml:"description"`
	Maintainers []Person `xml:"maintainer"`
	Authors     []Person `xml:"author"`
	Licenses    []string `xml:"license"`
	URLs        []string `xml:"url"`

	BuildtoolDepends   []string `xml:"buildtool_depend"`
	BuildDepends       []string `xml:"build_depend"`
	BuildExportDepends []string `xml:"build_export_depend"`
	ExecDepends        []string `xml:"exec_depend"`
	RunDepends         []string `xml:"run_depend"`
	Depends            []string `xml:"depend"`
	TestDepends        []string `xml:"test_depend"`
	DocDepends         []string `xml:"doc_depend"`

	Export struct {
		Inner string `xml:",innerxml"`
	} `xml:"export"`
}

// Person is a maintainer or author entry.
type Person struct {
	Name  string `xml:",chardata"`
	Email string `xml:"email,attr"`
}

func (p Person) String() string {
	name := collapse(p.Name)
	if p.Email == "" {
		return name
	}
	return fmt.Sprintf("%s <%s>", name, p.Email)
}

// ReadManifest parses the package.xml at path.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseManifest(data)
}

// ParseManifest parses package.xml content. A manifest without a name is
// malformed.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
	}
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return nil, fmt.Errorf("%w: missing <name>", ErrMalformedManifest)
	}
	if m.Format == "" {
		m.Format = "1"
	}
	return &m, nil
}

// Dependencies returns the sorted, deduplicated names of the packages this
// one needs to build or run. Test and doc dependencies are not included.
func (m *Manifest) Dependencies() []string {
	seen := make(map[string]struct{})
	for _, group := range [][]string{
		m.BuildtoolDepends, m.BuildDepends, m.BuildExportDepends,
		m.ExecDepends, m.RunDepends, m.Depends,
	} {
		for _, d := range group {
			if d = strings.TrimSpace(d); d != "" {
				seen[d] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Attributes flattens the manifest into a record, leaving out empty fields.
func (m *Manifest) Attributes() map[string]any {
	attrs := map[string]any{"type": "package"}
	set := func(key string, v string) {
		if v = collapse(v); v != "" {
			attrs[key] = v
		}
	}

	set("name", m.Name)
	set("version", m.Version)
	set("format", m.Format)
	set("description", m.Description)
	set("brief", brief(m.Description))
	set("author", joinPeople(m.Authors))
	set("maintainer", joinPeople(m.Maintainers))
	set("license", strings.Join(trimAll(m.Licenses), ", "))
	if urls := trimAll(m.URLs); len(urls) > 0 {
		attrs["url"] = urls[0]
		attrs["urls"] = urls
	}
	if licenses := trimAll(m.Licenses); len(licenses) > 0 {
		attrs["licenses"] = licenses
	}
	if deps := m.Dependencies(); len(deps) > 0 {
		attrs["depends"] = deps
	}
	if tests := trimAll(m.TestDepends); len(tests) > 0 {
		attrs["test_depends"] = tests
	}
	if exports := exportTags(m.Export.Inner); len(exports) > 0 {
		attrs["exports"] = exports
	}
	return attrs
}

// brief is the first sentence of a description.
func brief(desc string) string {
	desc = collapse(desc)
	if i := strings.Index(desc, ". "); i >= 0 {
		return desc[:i+1]
	}
	return desc
}

func joinPeople(people []Person) string {
	parts := make([]string, 0, len(people))
	for _, p := range people {
		if s := p.String(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = collapse(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// exportTags lists the element names inside <export>.
func exportTags(inner string) []string {
	dec := xml.NewDecoder(strings.NewReader(inner))
	depth := 0
	var tags []string
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				tags = append(tags, t.Name.Local)
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return tags
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
