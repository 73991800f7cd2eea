package construct

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// TemplateRoot marks constructs that own a template document (stacks).
// Logical IDs are derived from the path relative to the nearest enclosing
// template root, so element names do not drag the stack name along.
type TemplateRoot interface {
	Construct
	IsTemplateRoot() bool
}

// CloudFormation caps logical IDs at 255 characters.
const maxLogicalIDLen = 255

const hashSuffixLen = 8

// LogicalID derives the template logical ID for a construct: the path
// segments below the nearest template root, stripped to [A-Za-z0-9] and
// concatenated. An element sitting directly under the template root keeps
// its bare sanitized ID; deeper elements get an 8-hex-digit digest of the
// relative path appended so distinct paths can never collide after
// sanitization or truncation.
func LogicalID(c Construct) string {
	segs := relativeSegments(c)
	var b strings.Builder
	for _, seg := range segs {
		b.WriteString(sanitizeSegment(seg))
	}
	human := b.String()
	if len(segs) <= 1 {
		if len(human) > maxLogicalIDLen {
			human = human[:maxLogicalIDLen]
		}
		return human
	}
	suffix := pathDigest(segs)
	if len(human) > maxLogicalIDLen-hashSuffixLen {
		human = human[:maxLogicalIDLen-hashSuffixLen]
	}
	return human + suffix
}

// relativeSegments returns the IDs from just below the nearest template
// root (or the tree root) down to c.
func relativeSegments(c Construct) []string {
	var segs []string
	for n := c.Node(); n != nil && n.parent != nil; n = n.parent {
		segs = append(segs, n.id)
		if tr, ok := n.parent.host.(TemplateRoot); ok && tr.IsTemplateRoot() {
			break
		}
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return segs
}

func sanitizeSegment(seg string) string {
	var b strings.Builder
	for _, r := range seg {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func pathDigest(segs []string) string {
	sum := sha256.Sum256([]byte(strings.Join(segs, "/")))
	return strings.ToUpper(hex.EncodeToString(sum[:]))[:hashSuffixLen]
}
