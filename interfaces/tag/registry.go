package tag

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"flickr-embed/domain/model"
	"flickr-embed/infrastructure/logger"

	"golang.org/x/net/html"
)

var (
	ErrInvalidTag   = errors.New("tag name must be a non-empty word")
	ErrDuplicateTag = errors.New("tag already registered")
	ErrUnknownTag   = errors.New("tag not registered")
)

var (
	tagNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
	attrPattern    = regexp.MustCompile(`([A-Za-z_][\w-]*)\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+))`)
)

// Invocation is one occurrence of a tag in page content.
type Invocation struct {
	Body       string
	Attributes map[string]string
	Direction  model.TextDirection
}

// Handler renders a tag occurrence into markup.
type Handler func(ctx context.Context, inv Invocation) string

// Registry maps tag names to handlers. Register is meant to be called at
// startup; Render and Expand are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	pattern  *regexp.Regexp
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

func (r *Registry) Register(name string, h Handler) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if !tagNamePattern.MatchString(name) || h == nil {
		return fmt.Errorf("%w: %q", ErrInvalidTag, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTag, name)
	}
	r.handlers[name] = h
	r.pattern = compileTagPattern(r.handlers)
	logger.GetLogger().WithField("tag", name).Info("Registered tag handler")
	return nil
}

// Names returns the registered tag names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render runs the handler registered for name.
func (r *Registry) Render(ctx context.Context, name string, inv Invocation) (string, error) {
	r.mu.RLock()
	h, ok := r.handlers[strings.ToLower(name)]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTag, name)
	}
	return h(ctx, inv), nil
}

// Expand replaces every <name attrs>body</name> occurrence of a registered
// tag in content with its rendered markup. Unregistered tags are left as is.
func (r *Registry) Expand(ctx context.Context, content string, dir model.TextDirection) string {
	r.mu.RLock()
	pattern := r.pattern
	r.mu.RUnlock()
	if pattern == nil {
		return content
	}

	return pattern.ReplaceAllStringFunc(content, func(match string) string {
		m := pattern.FindStringSubmatch(match)
		// m[1] open name, m[2] attributes, m[3] body, m[4] close name
		if !strings.EqualFold(m[1], m[4]) {
			return match
		}
		out, err := r.Render(ctx, m[1], Invocation{
			Body:       m[3],
			Attributes: ParseAttributes(m[2]),
			Direction:  dir,
		})
		if err != nil {
			return match
		}
		return out
	})
}

// ParseAttributes reads key="value" pairs from the inside of an opening tag.
// Keys are lower-cased and values entity-decoded.
func ParseAttributes(s string) map[string]string {
	attrs := map[string]string{}
	for _, m := range attrPattern.FindAllStringSubmatch(s, -1) {
		val := m[2]
		if val == "" {
			val = m[3]
		}
		if val == "" {
			val = m[4]
		}
		attrs[strings.ToLower(m[1])] = html.UnescapeString(val)
	}
	return attrs
}

func compileTagPattern(handlers map[string]Handler) *regexp.Regexp {
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, regexp.QuoteMeta(name))
	}
	sort.Strings(names)
	alt := strings.Join(names, "|")
	return regexp.MustCompile(`(?is)<(` + alt + `)(\s[^>]*)?>(.*?)</(` + alt + `)\s*>`)
}
