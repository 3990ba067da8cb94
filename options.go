package outbound

// Option is a single key/value entry of an Options list.
type Option struct {
	Key   string `json:"key" yaml:"key"`
	Value any    `json:"value" yaml:"value"`
}

// Opt returns an Option.
func Opt(key string, value any) Option {
	return Option{Key: key, Value: value}
}

// Options is an ordered keyword list. Keys may repeat; lookups return the
// first match.
type Options []Option

// Get returns the value of the first entry with the given key.
func (o Options) Get(key string) (any, bool) {
	for _, opt := range o {
		if opt.Key == key {
			return opt.Value, true
		}
	}
	return nil, false
}

// Has reports whether the list contains the key.
func (o Options) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns the keys in list order, duplicates included.
func (o Options) Keys() []string {
	keys := make([]string, len(o))
	for i, opt := range o {
		keys[i] = opt.Key
	}
	return keys
}

// Prepend returns a new list with head followed by o. Because lookups return
// the first match, entries in head take precedence.
func Prepend(o Options, head ...Option) Options {
	out := make(Options, 0, len(head)+len(o))
	out = append(out, head...)
	return append(out, o...)
}

// clone returns a copy of o, never nil.
func (o Options) clone() Options {
	out := make(Options, len(o))
	copy(out, o)
	return out
}
