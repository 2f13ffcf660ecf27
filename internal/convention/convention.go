// Package convention binds a compiled pattern over one path segment to the typed
// fields of its named capture groups.
//
// A Convention decodes a file or folder name into Values and, when it carries a
// generation template, renders Values back into a name. Templates use `{name}`
// tags rendered through each field Encode, e.g. `cycle_{cycle_number}`.
package convention

import (
	"io"
	"regexp"
	"slices"

	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/valyala/fasttemplate"
)

const (
	templateStartTag = "{"
	templateEndTag   = "}"
)

// Values holds decoded field values by field name.
type Values map[string]any

// Clone returns a copy of the values.
func (values Values) Clone() Values {
	clone := make(Values, len(values))
	for name, value := range values {
		clone[name] = value
	}

	return clone
}

// Merge returns a copy of values overridden by other.
func (values Values) Merge(other Values) Values {
	merged := values.Clone()
	for name, value := range other {
		merged[name] = value
	}

	return merged
}

// Convention is a compiled pattern plus the schema of its capture groups.
type Convention struct {
	regex        *regexp.Regexp
	template     *fasttemplate.Template
	pattern      string
	templateText string
	fields       []field.Field
}

// New compiles a convention. The pattern must match a whole segment, it is
// anchored on both ends. Every field needs a named group of the same name and every
// named group needs a field. When template is not empty, its tags must name
// exactly the declared fields.
func New(pattern string, fields []field.Field, template string) (*Convention, error) {
	regex, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, errors.New(err)
	}

	c := &Convention{
		regex:        regex,
		pattern:      pattern,
		templateText: template,
		fields:       slices.Clone(fields),
	}

	if err := c.checkGroups(); err != nil {
		return nil, err
	}

	if template != "" {
		if c.template, err = fasttemplate.NewTemplate(template, templateStartTag, templateEndTag); err != nil {
			return nil, errors.New(err)
		}

		if err := c.checkTemplate(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// MustNew is like New but panics on error. It is meant for conventions declared
// as package variables.
func MustNew(pattern string, fields []field.Field, template string) *Convention {
	c, err := New(pattern, fields, template)
	if err != nil {
		panic(err)
	}

	return c
}

// Pattern returns the pattern as given to New.
func (c *Convention) Pattern() string {
	return c.pattern
}

// Template returns the generation template, empty when the convention only parses.
func (c *Convention) Template() string {
	return c.templateText
}

// Fields returns the declared fields in order.
func (c *Convention) Fields() []field.Field {
	return slices.Clone(c.fields)
}

// Names returns the declared field names in order.
func (c *Convention) Names() []string {
	return field.Names(c.fields)
}

// Field returns the declared field with the given name, so that folder conventions
// can reuse the fields of a file convention.
func (c *Convention) Field(name string) (field.Field, bool) {
	return field.Find(c.fields, name)
}

// Match decodes a segment. It returns nil values and no error when the segment does
// not match the pattern. When the pattern matches but a field cannot decode its
// group, the field.DecodeError is returned and the segment must be treated as not
// matching.
func (c *Convention) Match(segment string) (Values, error) {
	submatches := c.regex.FindStringSubmatchIndex(segment)
	if submatches == nil {
		return nil, nil
	}

	values := make(Values, len(c.fields))

	for i, name := range c.regex.SubexpNames() {
		if name == "" {
			continue
		}

		f, _ := c.Field(name)

		start, end := submatches[2*i], submatches[2*i+1]
		if start < 0 {
			if value, ok := f.Default(); ok {
				values[name] = value
			}

			continue
		}

		value, err := f.Decode(segment[start:end])
		if err != nil {
			return nil, err
		}

		values[name] = value
	}

	return values, nil
}

// Generate renders values through the template. Values for fields that the
// template does not use are ignored.
func (c *Convention) Generate(values Values) (string, error) {
	if c.template == nil {
		return "", errors.New(NoTemplateError{Pattern: c.pattern})
	}

	return c.template.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		value, ok := values[tag]
		if !ok {
			return 0, errors.New(MissingFieldError{Field: tag, Template: c.templateText})
		}

		f, _ := c.Field(tag)

		text, err := f.Encode(value)
		if err != nil {
			return 0, err
		}

		return io.WriteString(w, text)
	})
}

func (c *Convention) checkGroups() error {
	var groups []string

	for _, name := range c.regex.SubexpNames() {
		if name == "" {
			continue
		}

		if slices.Contains(groups, name) {
			return errors.New(SchemaError{Pattern: c.pattern, Reason: "duplicate capture group", Names: []string{name}})
		}

		groups = append(groups, name)
	}

	return checkSameNames(c.pattern, "capture group", groups, c.Names())
}

func (c *Convention) checkTemplate() error {
	var tags []string

	c.template.ExecuteFuncString(func(_ io.Writer, tag string) (int, error) {
		if !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}

		return 0, nil
	})

	return checkSameNames(c.templateText, "template tag", tags, c.Names())
}

func checkSameNames(source, kind string, found, declared []string) error {
	var missing, extra []string

	for _, name := range declared {
		if !slices.Contains(found, name) {
			missing = append(missing, name)
		}
	}

	for _, name := range found {
		if !slices.Contains(declared, name) {
			extra = append(extra, name)
		}
	}

	if len(missing) > 0 {
		return errors.New(SchemaError{Pattern: source, Reason: "fields without " + kind, Names: missing})
	}

	if len(extra) > 0 {
		return errors.New(SchemaError{Pattern: source, Reason: kind + "s without field", Names: extra})
	}

	return nil
}
