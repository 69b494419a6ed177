// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package document resolves CST documents into typed document models.
//
// A Document owns an arena of resolved nodes addressed by NodeID. Aliases
// refer to their targets by NodeID, so documents with recursive aliases are
// plain index graphs. Resolution never stops for invalid input: problems are
// recorded as diagnostics in Errors and Warnings, and the rest of the
// document is still resolved.
package document

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/samber/lo"

	"go.yaml.in/yamldoc/internal/cst"
)

// TagPrefix is a tag handle and the prefix it expands to.
type TagPrefix struct {
	Handle string
	Prefix string
}

// Document is a resolved YAML document.
type Document struct {
	// Contents is the root node, or NoNode for an empty document.
	Contents NodeID
	Anchors  *Anchors
	Schema   *Schema

	// Version is set by a %YAML directive.
	Version string
	// TagPrefixes are the handles declared by %TAG directives.
	TagPrefixes []TagPrefix
	// DirectivesEndMarker is set when the document has a `---` line.
	DirectivesEndMarker bool

	// CommentBefore holds the comments of the directives section, and
	// Comment the comments that are not attached to a node.
	CommentBefore string
	Comment       string

	Errors   []*Error
	Warnings []*Error

	// CST is the node the document was resolved from, if any.
	CST *cst.Node

	opts     Options
	nodes    []Node
	recorded map[*Error]bool
}

// New returns an empty Document.
func New(opts ...Option) (*Document, error) {
	o, err := ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	d := &Document{Contents: NoNode, opts: *o}
	d.Anchors = newAnchors(d, o.AnchorPrefix)
	if err := d.setSchema(); err != nil {
		return nil, err
	}
	return d, nil
}

// Parse resolves a CST document. The error is only for invalid options;
// problems with the document are recorded on it.
func Parse(n *cst.Node, opts ...Option) (*Document, error) {
	d, err := New(opts...)
	if err != nil {
		return nil, err
	}
	d.parse(n, nil)
	return d, nil
}

// ParseAll resolves every document of a stream. YAML 1.1 documents without
// directives inherit the tag prefixes of the previous document.
func ParseAll(s *cst.Stream, opts ...Option) ([]*Document, error) {
	o, err := ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	docs := make([]*Document, 0, len(s.Documents))
	var prev *Document
	for _, n := range s.Documents {
		d := &Document{Contents: NoNode, opts: *o}
		d.Anchors = newAnchors(d, o.AnchorPrefix)
		if err := d.setSchema(); err != nil {
			return nil, err
		}
		d.parse(n, prev)
		docs = append(docs, d)
		prev = d
	}
	return docs, nil
}

// Options returns the options the document was created with.
func (d *Document) Options() Options {
	return d.opts
}

// version returns the YAML version in effect.
func (d *Document) version() string {
	if _, ok := versionDefaults[d.Version]; ok {
		return d.Version
	}
	return d.opts.Version
}

func (d *Document) defaults() versionDefault {
	return versionDefaults[d.version()]
}

func (d *Document) setSchema() error {
	def := d.defaults()
	name := d.opts.Schema
	if name == "" {
		name = def.schema
	}
	merge := def.merge
	if d.opts.Merge != nil {
		merge = *d.opts.Merge
	}
	s, err := NewSchema(SchemaOptions{
		Name:     name,
		Merge:    merge,
		Tags:     d.opts.Tags,
		TagsFunc: d.opts.TagsFunc,
		Binary:   d.opts.Binary,
	})
	if err != nil {
		return err
	}
	d.Schema = s
	return nil
}

func (d *Document) parse(n *cst.Node, prev *Document) {
	d.CST = n
	d.addError(n.Error)
	d.parseDirectives(n.Directives, prev)
	d.DirectivesEndMarker = n.DirectivesEnd >= 0
	if d.Version != "" {
		if err := d.setSchema(); err != nil {
			d.addError(annotate(err, n))
		}
	}
	d.parseContents(n.Contents)
}

func (d *Document) parseDirectives(directives []*cst.Node, prev *Document) {
	var comments []string
	hasDirectives := false
	for _, dir := range directives {
		d.addError(dir.Error)
		if c, ok := dir.Comment(); ok {
			comments = append(comments, c)
		}
		if dir.Kind != cst.DirectiveNode {
			continue
		}
		switch dir.Name {
		case "TAG":
			d.tagDirective(dir)
			hasDirectives = true
		case "YAML", "YAML:1.0":
			d.yamlDirective(dir)
			hasDirectives = true
		default:
			d.addError(cst.Errorf(Warning, dir, "YAML only supports %%TAG and %%YAML directives, and not %%%s", dir.Name))
		}
	}
	if prev != nil && !hasDirectives && lo.CoalesceOrEmpty(d.Version, prev.Version, d.opts.Version) == "1.1" {
		d.TagPrefixes = append([]TagPrefix(nil), prev.TagPrefixes...)
		d.Version = prev.Version
	}
	d.CommentBefore = strings.Join(comments, "\n")
}

func (d *Document) tagDirective(dir *cst.Node) {
	params := dir.Parameters()
	if len(params) < 2 {
		d.semantic(dir, "Insufficient parameters given for %TAG directive")
		return
	}
	handle, prefix := params[0], params[1]
	if lo.ContainsBy(d.TagPrefixes, func(p TagPrefix) bool { return p.Handle == handle }) {
		d.semantic(dir, "The %TAG directive must only be given at most once per handle in the same document.")
		return
	}
	d.TagPrefixes = append(d.TagPrefixes, TagPrefix{Handle: handle, Prefix: prefix})
}

func (d *Document) yamlDirective(dir *cst.Node) {
	if d.Version != "" {
		d.semantic(dir, "The %YAML directive must only be given at most once per document.")
	}
	var version string
	if params := dir.Parameters(); len(params) > 0 {
		version = params[0]
	}
	if dir.Name == "YAML:1.0" {
		version = "1.0"
	}
	if version == "" {
		d.semantic(dir, "Insufficient parameters given for %YAML directive")
		return
	}
	if _, ok := versionDefaults[version]; !ok {
		d.addError(cst.Errorf(Warning, dir, "Document will be parsed as YAML %s rather than YAML %s", d.version(), version))
	}
	d.Version = version
}

func (d *Document) parseContents(contents []*cst.Node) {
	var before, after []string
	body := NoNode
	haveBody := false
	for _, n := range contents {
		if n.Kind == cst.CommentNode {
			c, _ := n.Comment()
			if haveBody {
				after = append(after, c)
			} else {
				before = append(before, c)
			}
			continue
		}
		if haveBody {
			d.syntax(n, "Document is not valid YAML (bad indentation?)")
			continue
		}
		body = d.resolveNode(n)
		haveBody = true
	}
	d.Contents = body
	if body == NoNode {
		d.Comment = strings.Join(append(before, after...), "\n")
		return
	}
	if cb := strings.Join(before, "\n"); cb != "" {
		d.prependCommentBefore(body, cb)
	}
	d.Comment = strings.Join(after, "\n")
}

// prependCommentBefore attaches a leading comment to the first entry of a
// collection, or to the node itself.
func (d *Document) prependCommentBefore(id NodeID, comment string) {
	n := &d.nodes[id]
	switch {
	case n.Kind == MapNode && len(n.Pairs) > 0:
		n.Pairs[0].CommentBefore = joinComments(comment, n.Pairs[0].CommentBefore)
	case n.Kind == SeqNode && len(n.Items) > 0 && n.Items[0] != NoNode:
		first := &d.nodes[n.Items[0]]
		first.CommentBefore = joinComments(comment, first.CommentBefore)
	default:
		n.CommentBefore = joinComments(comment, n.CommentBefore)
	}
}

func joinComments(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + "\n" + b
}

// resolveNode resolves a CST node into the arena. Anchored nodes get their
// slot before their contents are resolved, so that aliases inside them can
// refer to it.
func (d *Document) resolveNode(n *cst.Node) NodeID {
	if n == nil {
		return NoNode
	}
	d.addError(n.Error)
	before, after, hasAnchor, hasTag := d.resolveProps(n)
	id := NoNode
	// Aliases cannot be anchored; their anchor is reported below and never bound.
	if hasAnchor && n.Kind != cst.AliasNode {
		name, _ := n.Anchor()
		id = d.add(Node{Target: NoNode, Range: n.Range, Type: n.Kind})
		if prev, ok := d.Anchors.Node(name); ok {
			// Aliases of the earlier node are resolved already.
			d.Anchors.bind(d.Anchors.NewName(name), prev)
		}
		d.Anchors.bind(name, id)
	}
	if n.Kind == cst.AliasNode && (hasAnchor || hasTag) {
		d.semantic(n, "An alias node must not specify any properties")
	}
	res := d.resolveValue(n)
	if res == nil {
		return NoNode
	}
	if res.Kind != AliasNode {
		res.Target = NoNode
	}
	res.Range = n.Range
	res.Type = n.Kind
	res.CommentBefore = joinComments(res.CommentBefore, strings.Join(before, "\n"))
	res.Comment = joinComments(res.Comment, strings.Join(after, "\n"))
	if id == NoNode {
		return d.add(*res)
	}
	d.nodes[id] = *res
	return id
}

// resolveProps checks the properties of n and splits its comments into
// those before and after the value.
func (d *Document) resolveProps(n *cst.Node) (before, after []string, hasAnchor, hasTag bool) {
	src := n.Source().Text
	for _, p := range n.Props {
		switch src[p.Start] {
		case '#':
			if !n.CommentHasRequiredWhitespace(p.Start) {
				d.semantic(n, "Comments must be separated from other tokens by white space characters")
			}
			c := src[p.Start+1 : p.End]
			if p.Start > n.ValueRange.Start || (n.Kind.IsBlockScalar() && p.Start > n.Header.Start) {
				after = append(after, c)
			} else {
				before = append(before, c)
			}
		case '&':
			if hasAnchor {
				d.semantic(n, "A node can have at most one anchor")
			}
			hasAnchor = true
		case '!':
			if hasTag {
				d.semantic(n, "A node can have at most one tag")
			}
			hasTag = true
		}
	}
	return before, after, hasAnchor, hasTag
}

func (d *Document) resolveValue(n *cst.Node) *Node {
	if n.Kind == cst.AliasNode {
		name := n.Raw()
		target, ok := d.Anchors.Node(name)
		if !ok {
			d.addError(cst.Errorf(ReferenceError, n, "Aliased anchor not found: %s", name))
			return nil
		}
		return &Node{Kind: AliasNode, Target: target}
	}
	if tagName := d.resolveTagName(n); tagName != "" {
		return d.Schema.ResolveNodeWithFallback(d, n, tagName)
	}
	if n.Kind != cst.PlainNode {
		d.syntax(n, fmt.Sprintf("Failed to resolve %s node here", n.Kind))
		return nil
	}
	res, err := d.Schema.ResolveScalar(d.resolveString(n), nil)
	if err != nil {
		d.addError(annotate(err, n))
		return nil
	}
	return res
}

// resolveString returns the string value of a scalar node, recording the
// problems found computing it. It is empty for other nodes.
func (d *Document) resolveString(n *cst.Node) string {
	str, errs, ok := n.StrValue()
	if !ok {
		return ""
	}
	for _, err := range errs {
		if err.Source == nil {
			err.Source = n
		}
		d.addError(err)
	}
	return str
}

// resolveTagName returns the full name of the tag of n: its explicit tag,
// or the default tag for its shape. It is empty for untagged plain scalars,
// which are resolved by their value.
func (d *Document) resolveTagName(n *cst.Node) string {
	nonSpecific := false
	if tag, ok := n.Tag(); ok {
		switch {
		case tag.Verbatim != "":
			if tag.Verbatim != "!" && tag.Verbatim != "!!" {
				return tag.Verbatim
			}
			d.semantic(n, fmt.Sprintf("Verbatim tags aren't resolved, so %s is invalid.", tag.Verbatim))
		case tag.Handle == "!" && tag.Suffix == "":
			nonSpecific = true
		default:
			name, err := d.resolveTagHandle(n, tag)
			if err == nil {
				return name
			}
			d.addError(err)
		}
	}
	switch n.Kind {
	case cst.BlockFoldedNode, cst.BlockLiteralNode, cst.QuoteDoubleNode, cst.QuoteSingleNode:
		return StrTag
	case cst.BlockMapNode, cst.FlowMapNode:
		return MapTag
	case cst.BlockSeqNode, cst.FlowSeqNode:
		return SeqTag
	case cst.PlainNode:
		if nonSpecific {
			return StrTag
		}
	}
	return ""
}

var vocabTag = regexp.MustCompile(`(?i)^([a-z0-9-]+)/(.*)`)

func lookupPrefix(prefixes []TagPrefix, handle string) (string, bool) {
	p, ok := lo.Find(prefixes, func(p TagPrefix) bool { return p.Handle == handle })
	return p.Prefix, ok
}

func (d *Document) resolveTagHandle(n *cst.Node, tag cst.TagProp) (string, *Error) {
	prefix, ok := lookupPrefix(d.TagPrefixes, tag.Handle)
	if !ok {
		prefix, ok = lookupPrefix(d.defaults().prefixes, tag.Handle)
	}
	if !ok {
		return "", cst.Errorf(SemanticError, n, "The %s tag handle is non-default and was not declared.", tag.Handle)
	}
	if tag.Suffix == "" {
		return "", cst.Errorf(SemanticError, n, "The %s tag has no suffix.", tag.Handle)
	}
	if tag.Handle == "!" && d.version() == "1.0" {
		if tag.Suffix[0] == '^' {
			d.addError(cst.NewError(Warning, n, "YAML 1.0 ^ tag expansion is not supported"))
			return tag.Suffix, nil
		}
		if strings.ContainsAny(tag.Suffix, ":/") {
			// word/foo is tag:word.yaml.org,2002:foo
			if m := vocabTag.FindStringSubmatch(tag.Suffix); m != nil {
				return "tag:" + m[1] + ".yaml.org,2002:" + m[2], nil
			}
			return "tag:" + tag.Suffix, nil
		}
	}
	suffix, err := url.PathUnescape(tag.Suffix)
	if err != nil {
		d.addError(cst.Errorf(SemanticError, n, "The %s tag suffix is not valid: %v", tag.Suffix, err))
		suffix = tag.Suffix
	}
	return prefix + suffix, nil
}

var tagEscapes = strings.NewReplacer("!", "%21", ",", "%2C", "[", "%5B", "]", "%5D", "{", "%7B", "}", "%7D")

var privateTag = regexp.MustCompile(`^tag:private\.yaml\.org,2002:([^:/]+)$`)
var vocabularyTag = regexp.MustCompile(`^tag:([a-zA-Z0-9-]+)\.yaml\.org,2002:(.*)`)

// StringifyTag writes a tag in the shortest form the document's prefixes
// allow.
func (d *Document) StringifyTag(tag string) string {
	tag = LongTag(tag)
	if d.version() == "1.0" {
		if m := privateTag.FindStringSubmatch(tag); m != nil {
			return "!" + m[1]
		}
		if m := vocabularyTag.FindStringSubmatch(tag); m != nil {
			return "!" + m[1] + "/" + m[2]
		}
		return "!" + strings.TrimPrefix(tag, "tag:")
	}
	match := func(p TagPrefix) bool { return strings.HasPrefix(tag, p.Prefix) }
	p, ok := lo.Find(d.TagPrefixes, match)
	if !ok {
		p, ok = lo.Find(d.defaults().prefixes, match)
	}
	if !ok {
		if strings.HasPrefix(tag, "!") {
			return tag
		}
		return "!<" + tag + ">"
	}
	return p.Handle + tagEscapes.Replace(tag[len(p.Prefix):])
}
