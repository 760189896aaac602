package manifest

import (
	"fmt"
	"io"
	"os"

	"github.com/magiconair/properties"
)

// Properties is the flat key/value metadata of a library.
type Properties map[string]string

// Get returns the value of the given key and whether it was present.
func (p Properties) Get(key string) (string, bool) {
	value, ok := p[key]
	return value, ok
}

// ReadProperties parses a Java-style property file.  Variable expansion is
// disabled; values are taken literally.
func ReadProperties(in io.Reader) (Properties, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	loader := &properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
	}
	props, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse properties: %w", err)
	}
	return Properties(props.Map()), nil
}

// ReadPropertiesFile parses the named property file.
func ReadPropertiesFile(filename string) (Properties, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	props, err := ReadProperties(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return props, nil
}
