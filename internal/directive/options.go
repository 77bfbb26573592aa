package directive

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

var (
	validate      = validator.New()
	schemaDecoder = schema.NewDecoder()
)

func init() {
	// Report fields by their option or YAML key rather than the Go field name.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"schema", "yaml"} {
			name, _, _ := strings.Cut(f.Tag.Get(key), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	schemaDecoder.IgnoreUnknownKeys(false)
}

// Options configure one dispatcher family. They are written as space
// separated key=value pairs after //fanout:gen, and as group entries in
// fanout.yaml.
type Options struct {
	// Name is appended to every generated identifier.
	Name string `schema:"name" yaml:"name" validate:"omitempty,alphanum"`

	// Clone lists the parameter positions forwarded as duplicates.
	Clone []int `schema:"clone" yaml:"clone" validate:"dive,min=0"`
}

// String renders the options in directive syntax.
func (o Options) String() string {
	var parts []string
	if o.Name != "" {
		parts = append(parts, "name="+o.Name)
	}
	if len(o.Clone) > 0 {
		pos := make([]string, len(o.Clone))
		for i, c := range o.Clone {
			pos[i] = strconv.Itoa(c)
		}
		parts = append(parts, "clone="+strings.Join(pos, ","))
	}
	return strings.Join(parts, " ")
}

// ParseOptions decodes directive arguments of the form key=value. List values
// are comma separated. A key may appear only once.
func ParseOptions(args []string) (Options, error) {
	var opts Options
	values := make(url.Values)
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return opts, fmt.Errorf("malformed option %q: want key=value", arg)
		}
		if values.Has(key) {
			return opts, fmt.Errorf("option %q given more than once", key)
		}
		if value == "" {
			return opts, fmt.Errorf("option %q has no value", key)
		}
		for v := range strings.SplitSeq(value, ",") {
			if v == "" {
				return opts, fmt.Errorf("option %q has an empty list element", key)
			}
			values.Add(key, v)
		}
	}
	if len(values["name"]) > 1 {
		return opts, fmt.Errorf("option %q takes a single value", "name")
	}

	if err := schemaDecoder.Decode(&opts, values); err != nil {
		return opts, decodeError(err)
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// Validate checks the options' field constraints.
func (o Options) Validate() error {
	return ValidateStruct(o)
}

// ValidateStruct checks the validate tags of a struct using the same rules
// and messages as directive options.
func ValidateStruct(v any) error {
	return ValidationError(validate.Struct(v))
}

// ValidationError translates validator errors into a single error listing
// every failing field. Other errors are returned unchanged.
func ValidationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	messages := make([]string, 0, len(ves))
	for _, ve := range ves {
		messages = append(messages, ve.Field()+": "+formatValidationError(ve))
	}
	return errors.New(strings.Join(messages, "; "))
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "alphanum":
		return fmt.Sprintf("%q must contain only ASCII letters and digits", ve.Value())
	case "min":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "endswith":
		return fmt.Sprintf("must end with %q", ve.Param())
	case "excludes":
		return fmt.Sprintf("must not contain %q", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

func decodeError(err error) error {
	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return err
	}
	keys := make([]string, 0, len(multi))
	for k := range multi {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	messages := make([]string, 0, len(keys))
	for _, k := range keys {
		switch e := multi[k].(type) {
		case schema.UnknownKeyError:
			messages = append(messages, fmt.Sprintf("unknown option %q", e.Key))
		case schema.ConversionError:
			messages = append(messages, fmt.Sprintf("option %q: cannot convert to %s", e.Key, e.Type))
		default:
			messages = append(messages, multi[k].Error())
		}
	}
	return errors.New(strings.Join(messages, "; "))
}
