// Package directive parses the text of a single HTML comment as a template
// directive of the form:
//
//	<!-- @name key="value" key2='value2' -->
//
// An ordinary comment (one whose body does not start with '@') is not an
// error: Transform reports it by returning a nil Directive.
package directive

// Property is a single key/value pair declared on a directive. Properties
// are kept as an ordered sequence rather than a map so that declaration
// order and duplicate keys survive parsing; callers decide how duplicates
// are resolved.
type Property struct {
	Key   string
	Value string
}

// Directive is the parsed form of a directive comment.
type Directive struct {
	// Name is the template name following the '@' sigil, as written.
	Name string

	// Properties holds the declared properties in order.
	Properties []Property
}

// Get returns the value of the first property with the given key.
func (d *Directive) Get(key string) (string, bool) {
	for _, prop := range d.Properties {
		if prop.Key == key {
			return prop.Value, true
		}
	}
	return "", false
}

// Values returns all values declared for the given key, in order.
func (d *Directive) Values(key string) []string {
	var values []string
	for _, prop := range d.Properties {
		if prop.Key == key {
			values = append(values, prop.Value)
		}
	}
	return values
}
