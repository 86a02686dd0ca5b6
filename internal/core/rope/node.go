package rope

import "strings"

// Tree fan-out bounds.
const (
	maxChildren      = 8
	maxChunksPerLeaf = 4
)

// node is one node of the rope tree. Leaves (height 0) hold chunks;
// internal nodes hold children plus per-child summaries for seeking.
type node struct {
	height  uint8
	summary Summary

	children       []*node
	childSummaries []Summary

	chunks []chunk
}

func newLeaf() *node {
	return &node{height: 0}
}

func newLeafWithChunks(chunks []chunk) *node {
	n := &node{height: 0, chunks: chunks}
	for _, c := range chunks {
		n.summary = n.summary.add(c.summary)
	}
	return n
}

func newInternal(children []*node) *node {
	if len(children) == 0 {
		return newLeaf()
	}
	n := &node{
		height:         children[0].height + 1,
		children:       children,
		childSummaries: make([]Summary, len(children)),
	}
	for i, child := range children {
		n.childSummaries[i] = child.summary
		n.summary = n.summary.add(child.summary)
	}
	return n
}

func (n *node) isLeaf() bool {
	return n.height == 0
}

func (n *node) clone() *node {
	if n.isLeaf() {
		chunks := make([]chunk, len(n.chunks))
		copy(chunks, n.chunks)
		return &node{height: 0, summary: n.summary, chunks: chunks}
	}
	children := make([]*node, len(n.children))
	copy(children, n.children)
	summaries := make([]Summary, len(n.childSummaries))
	copy(summaries, n.childSummaries)
	return &node{
		height:         n.height,
		summary:        n.summary,
		children:       children,
		childSummaries: summaries,
	}
}

func (n *node) appendTo(sb *strings.Builder) {
	if n.isLeaf() {
		for _, c := range n.chunks {
			sb.WriteString(c.data)
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// appendByteRange appends the text of [start, end) in subtree-relative
// byte offsets.
func (n *node) appendByteRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}

	if n.isLeaf() {
		off := 0
		for _, c := range n.chunks {
			chunkEnd := off + c.len()
			if chunkEnd <= start {
				off = chunkEnd
				continue
			}
			if off >= end {
				break
			}
			lo := 0
			if start > off {
				lo = start - off
			}
			hi := c.len()
			if end < chunkEnd {
				hi = end - off
			}
			sb.WriteString(c.data[lo:hi])
			off = chunkEnd
		}
		return
	}

	off := 0
	for i, child := range n.children {
		childEnd := off + n.childSummaries[i].Bytes
		if childEnd <= start {
			off = childEnd
			continue
		}
		if off >= end {
			break
		}
		lo := 0
		if start > off {
			lo = start - off
		}
		hi := n.childSummaries[i].Bytes
		if end < childEnd {
			hi = end - off
		}
		child.appendByteRange(sb, lo, hi)
		off = childEnd
	}
}

// charToByte converts a subtree-relative rune index to a byte offset.
// Indices past the end clamp to the subtree byte length.
func (n *node) charToByte(charIdx int) int {
	if charIdx <= 0 {
		return 0
	}
	if charIdx >= n.summary.Runes {
		return n.summary.Bytes
	}

	if n.isLeaf() {
		bytes := 0
		for _, c := range n.chunks {
			if charIdx < c.summary.Runes {
				return bytes + charToByteInString(c.data, charIdx)
			}
			charIdx -= c.summary.Runes
			bytes += c.summary.Bytes
		}
		return bytes
	}

	bytes := 0
	for i, child := range n.children {
		if charIdx < n.childSummaries[i].Runes {
			return bytes + child.charToByte(charIdx)
		}
		charIdx -= n.childSummaries[i].Runes
		bytes += n.childSummaries[i].Bytes
	}
	return bytes
}

// byteToChar converts a subtree-relative byte offset to a rune index.
// The offset must be a rune boundary; past-the-end offsets clamp.
func (n *node) byteToChar(byteOff int) int {
	if byteOff <= 0 {
		return 0
	}
	if byteOff >= n.summary.Bytes {
		return n.summary.Runes
	}

	if n.isLeaf() {
		runes := 0
		for _, c := range n.chunks {
			if byteOff < c.summary.Bytes {
				return runes + runeCountPrefix(c.data, byteOff)
			}
			byteOff -= c.summary.Bytes
			runes += c.summary.Runes
		}
		return runes
	}

	runes := 0
	for i, child := range n.children {
		if byteOff < n.childSummaries[i].Bytes {
			return runes + child.byteToChar(byteOff)
		}
		byteOff -= n.childSummaries[i].Bytes
		runes += n.childSummaries[i].Runes
	}
	return runes
}

// lineStartChar returns the rune index of the first character of the
// given subtree-relative line. Lines past the last clamp to the rune
// length.
func (n *node) lineStartChar(line int) int {
	if line <= 0 {
		return 0
	}
	if line > n.summary.Lines {
		return n.summary.Runes
	}

	if n.isLeaf() {
		runes := 0
		for _, c := range n.chunks {
			if line <= c.summary.Lines {
				nl := findNthNewline(c.data, line)
				return runes + runeCountPrefix(c.data, nl) + 1
			}
			line -= c.summary.Lines
			runes += c.summary.Runes
		}
		return runes
	}

	runes := 0
	for i, child := range n.children {
		if line <= n.childSummaries[i].Lines {
			return runes + child.lineStartChar(line)
		}
		line -= n.childSummaries[i].Lines
		runes += n.childSummaries[i].Runes
	}
	return runes
}

// charToLine returns the number of newlines strictly before the given
// subtree-relative rune index.
func (n *node) charToLine(charIdx int) int {
	if charIdx <= 0 {
		return 0
	}
	if charIdx >= n.summary.Runes {
		return n.summary.Lines
	}

	if n.isLeaf() {
		lines := 0
		for _, c := range n.chunks {
			if charIdx < c.summary.Runes {
				return lines + countNewlines(c.data[:charToByteInString(c.data, charIdx)])
			}
			charIdx -= c.summary.Runes
			lines += c.summary.Lines
		}
		return lines
	}

	lines := 0
	for i, child := range n.children {
		if charIdx < n.childSummaries[i].Runes {
			return lines + child.charToLine(charIdx)
		}
		charIdx -= n.childSummaries[i].Runes
		lines += n.childSummaries[i].Lines
	}
	return lines
}

// chunkAt locates the chunk containing the subtree-relative byte offset.
// It returns the chunk text and the chunk's start offset within the
// subtree. Offsets at or past the end return ("", byte length).
func (n *node) chunkAt(byteOff int) (string, int) {
	if byteOff >= n.summary.Bytes {
		return "", n.summary.Bytes
	}
	if byteOff < 0 {
		byteOff = 0
	}

	if n.isLeaf() {
		start := 0
		for _, c := range n.chunks {
			if byteOff < c.summary.Bytes {
				return c.data, start
			}
			byteOff -= c.summary.Bytes
			start += c.summary.Bytes
		}
		return "", start
	}

	start := 0
	for i, child := range n.children {
		if byteOff < n.childSummaries[i].Bytes {
			data, childStart := child.chunkAt(byteOff)
			return data, start + childStart
		}
		byteOff -= n.childSummaries[i].Bytes
		start += n.childSummaries[i].Bytes
	}
	return "", start
}

// split divides the subtree at a byte offset (a rune boundary),
// returning the [0, off) and [off, end) halves.
func (n *node) split(byteOff int) (*node, *node) {
	if byteOff <= 0 {
		return newLeaf(), n.clone()
	}
	if byteOff >= n.summary.Bytes {
		return n.clone(), newLeaf()
	}
	if n.isLeaf() {
		return n.splitLeaf(byteOff)
	}
	return n.splitInternal(byteOff)
}

func (n *node) splitLeaf(byteOff int) (*node, *node) {
	var left, right []chunk
	off := 0
	for _, c := range n.chunks {
		switch {
		case off+c.len() <= byteOff:
			left = append(left, c)
		case off >= byteOff:
			right = append(right, c)
		default:
			l, r := c.split(byteOff - off)
			if !l.isEmpty() {
				left = append(left, l)
			}
			if !r.isEmpty() {
				right = append(right, r)
			}
		}
		off += c.len()
	}
	return newLeafWithChunks(left), newLeafWithChunks(right)
}

func (n *node) splitInternal(byteOff int) (*node, *node) {
	var left, right []*node
	off := 0
	for i, child := range n.children {
		childLen := n.childSummaries[i].Bytes
		switch {
		case off+childLen <= byteOff:
			left = append(left, child)
		case off >= byteOff:
			right = append(right, child)
		default:
			l, r := child.split(byteOff - off)
			if l.summary.Bytes > 0 {
				left = append(left, l)
			}
			if r.summary.Bytes > 0 {
				right = append(right, r)
			}
		}
		off += childLen
	}
	return buildFromNodes(left), buildFromNodes(right)
}

// buildFromNodes assembles a balanced tree from an ordered list of
// subtrees of mixed heights no greater than one apart.
func buildFromNodes(nodes []*node) *node {
	switch len(nodes) {
	case 0:
		return newLeaf()
	case 1:
		return nodes[0]
	}
	if len(nodes) <= maxChildren {
		return newInternal(nodes)
	}

	var parents []*node
	for i := 0; i < len(nodes); i += maxChildren {
		end := i + maxChildren
		if end > len(nodes) {
			end = len(nodes)
		}
		parents = append(parents, newInternal(nodes[i:end]))
	}
	return buildFromNodes(parents)
}

// concatNodes joins two subtrees, rebalancing across the seam.
func concatNodes(left, right *node) *node {
	if left == nil || left.summary.Bytes == 0 {
		if right == nil {
			return newLeaf()
		}
		return right
	}
	if right == nil || right.summary.Bytes == 0 {
		return left
	}

	if left.isLeaf() && right.isLeaf() {
		return concatLeaves(left, right)
	}

	for left.height < right.height {
		left = newInternal([]*node{left})
	}
	for right.height < left.height {
		right = newInternal([]*node{right})
	}

	if left.isLeaf() {
		return concatLeaves(left, right)
	}

	all := make([]*node, 0, len(left.children)+len(right.children))
	all = append(all, left.children...)
	all = append(all, right.children...)
	if len(all) <= maxChildren {
		return newInternal(all)
	}
	return buildFromNodes(all)
}

func concatLeaves(left, right *node) *node {
	total := len(left.chunks) + len(right.chunks)
	if total <= maxChunksPerLeaf {
		chunks := make([]chunk, 0, total)
		chunks = append(chunks, left.chunks...)
		chunks = append(chunks, right.chunks...)
		return newLeafWithChunks(chunks)
	}
	return newInternal([]*node{left.clone(), right.clone()})
}
