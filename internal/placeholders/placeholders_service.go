// Package placeholders renders `{{ name | modifier(args) }}` templates used to
// shape step output for the calling pipeline.
package placeholders

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/AnotherFullstackDev/stepkit/internal/lib"
)

type PlaceholderResolver func() (string, error)

type modifierResolver func(string, []string) (string, error)

type placeholderModifier struct {
	name string
	args []string
}

type placeholder struct {
	raw         string
	rawStartIdx int
	rawEndIdx   int
	value       string
	modifiers   []placeholderModifier
}

var (
	placeholderRegExp = regexp.MustCompile(`{{\s*([^{}]+)\s*}}`)
	modifierRegExp    = regexp.MustCompile(`^(\w+)(\((.*)\))?$`)
)

type Service struct {
	now       func() time.Time
	modifiers map[string]modifierResolver
}

type Option func(*Service)

// WithClock replaces time.Now for the now.* resolvers.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(opts ...Option) *Service {
	s := &Service{
		now: time.Now,
		modifiers: map[string]modifierResolver{
			"upper":       upperModifier,
			"lower":       lowerModifier,
			"trim":        trimModifier,
			"replace":     replaceModifier,
			"replace_all": replaceAllModifier,
			"default":     defaultModifier,
			"pad_left":    padLeftModifier,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) extractPlaceholders(value string) ([]placeholder, error) {
	matches := placeholderRegExp.FindAllStringSubmatchIndex(value, -1)
	placeholders := make([]placeholder, 0, len(matches))

	for _, match := range matches {
		raw, inner := value[match[0]:match[1]], value[match[2]:match[3]]

		parts := splitOutsideQuotes(inner, '|')
		name := strings.TrimSpace(parts[0])
		if name == "" {
			return nil, fmt.Errorf("empty placeholder name in %s. %w", raw, lib.BadUserInputError)
		}

		modifiers := make([]placeholderModifier, 0, len(parts)-1)
		for _, part := range parts[1:] {
			rawModifier := strings.TrimSpace(part)
			if rawModifier == "" {
				continue
			}

			modifierMatch := modifierRegExp.FindStringSubmatch(rawModifier)
			if modifierMatch == nil {
				return nil, fmt.Errorf("invalid modifier format %q in placeholder: %s. %w", rawModifier, raw, lib.BadUserInputError)
			}

			var args []string
			if rawArgs := strings.TrimSpace(modifierMatch[3]); rawArgs != "" {
				args = splitOutsideQuotes(rawArgs, ',')
				for i := range args {
					args[i] = strings.TrimSpace(args[i])
					if unquoted, err := strconv.Unquote(args[i]); err == nil {
						args[i] = unquoted
					}
				}
			}

			modifiers = append(modifiers, placeholderModifier{
				name: modifierMatch[1],
				args: args,
			})
		}

		placeholders = append(placeholders, placeholder{
			raw:         raw,
			rawStartIdx: match[0],
			rawEndIdx:   match[1],
			value:       name,
			modifiers:   modifiers,
		})
	}

	return placeholders, nil
}

// splitOutsideQuotes splits on sep unless it sits inside a double quoted argument.
func splitOutsideQuotes(value string, sep rune) []string {
	var parts []string
	var current strings.Builder
	inQuotes, escaped := false, false

	for _, r := range value {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && inQuotes:
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
		case r == sep && !inQuotes:
			parts = append(parts, current.String())
			current.Reset()
			continue
		}
		current.WriteRune(r)
	}

	return append(parts, current.String())
}

// Render replaces every placeholder in template. Resolvers passed by the
// caller take precedence over the built-in now.* resolvers. Resolved values
// are copied verbatim and never scanned for further placeholders.
func (s *Service) Render(template string, resolvers ...map[string]PlaceholderResolver) (string, error) {
	placeholders, err := s.extractPlaceholders(template)
	if err != nil {
		return "", fmt.Errorf("extracting placeholders: %w", err)
	}

	builtins := map[string]PlaceholderResolver{
		"now.unix":    s.resolveNowUnix,
		"now.iso8601": s.resolveNowISO8601,
	}

	var rendered strings.Builder
	cursor := 0

	for _, p := range placeholders {
		resolver := s.findResolver(p.value, builtins, resolvers)
		if resolver == nil {
			return "", fmt.Errorf("no resolver found for placeholder: %s. %w", p.raw, lib.BadUserInputError)
		}

		resolved, err := resolver()
		if err != nil {
			return "", fmt.Errorf("resolving placeholder %s: %w", p.raw, err)
		}

		for _, modifier := range p.modifiers {
			modifierFunc, ok := s.modifiers[modifier.name]
			if !ok {
				return "", fmt.Errorf("no resolver found for modifier: %s in placeholder: %s. %w", modifier.name, p.raw, lib.BadUserInputError)
			}

			resolved, err = modifierFunc(resolved, modifier.args)
			if err != nil {
				return "", fmt.Errorf("applying modifier %s to placeholder %s: %w", modifier.name, p.raw, err)
			}
		}

		rendered.WriteString(template[cursor:p.rawStartIdx])
		rendered.WriteString(resolved)
		cursor = p.rawEndIdx
	}
	rendered.WriteString(template[cursor:])

	return rendered.String(), nil
}

func (s *Service) findResolver(name string, builtins map[string]PlaceholderResolver, extra []map[string]PlaceholderResolver) PlaceholderResolver {
	for _, resolvers := range extra {
		if resolver, ok := resolvers[name]; ok {
			return resolver
		}
	}
	return builtins[name]
}

// Static wraps a precomputed value as a resolver.
func Static(value string) PlaceholderResolver {
	return func() (string, error) { return value, nil }
}
