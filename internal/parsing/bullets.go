package parsing

import (
	"regexp"
	"strings"
)

var bulletPrefixRx = regexp.MustCompile(`^\s*([•\-–—\*·▪►◦]|\d+\.)\s+`)

// IsBullet reports whether line starts with a list glyph or "1." numbering.
func IsBullet(line string) bool {
	return bulletPrefixRx.MatchString(line)
}

// StripBullet removes the list glyph and surrounding whitespace.
func StripBullet(line string) string {
	return strings.TrimSpace(bulletPrefixRx.ReplaceAllString(line, ""))
}

// CollectBullets groups a block of lines into bullet strings. A glyph line
// starts a new bullet, a plain line continues the pending one (or starts a
// paragraph bullet), and a blank line ends it. One-character results are
// dropped as extraction noise.
func CollectBullets(block []string) []string {
	var c bulletCollector
	for _, line := range block {
		c.add(line)
	}
	return c.finish()
}

type bulletCollector struct {
	out     []string
	pending []string
}

func (c *bulletCollector) add(line string) {
	switch {
	case IsBullet(line):
		c.flush()
		c.pending = []string{StripBullet(line)}
	case strings.TrimSpace(line) == "":
		c.flush()
	default:
		c.pending = append(c.pending, strings.TrimSpace(line))
	}
}

func (c *bulletCollector) flush() {
	if len(c.pending) == 0 {
		return
	}
	b := strings.TrimSpace(strings.Join(c.pending, " "))
	c.pending = nil
	if len([]rune(b)) > 1 {
		c.out = append(c.out, b)
	}
}

func (c *bulletCollector) finish() []string {
	c.flush()
	return c.out
}
