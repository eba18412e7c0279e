package domain

// Record is the flat interchange form of a Definition.
// It only uses strings, string slices and nested string maps, so it encodes
// as JSON or YAML without custom marshalling.
type Record struct {
	States          []string                     `json:"states" yaml:"states" mapstructure:"states"`
	Alphabet        []string                     `json:"alphabet" yaml:"alphabet" mapstructure:"alphabet"`
	InitialState    *string                      `json:"initial_state" yaml:"initial_state" mapstructure:"initial_state"`
	AcceptingStates []string                     `json:"accepting_states" yaml:"accepting_states" mapstructure:"accepting_states"`
	Transitions     map[string]map[string]string `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// ToRecord converts a Definition into its Record. States and accepting states are emitted
// in lexical order so encoded documents are stable. An empty initial state becomes nil.
func ToRecord(d *Definition) Record {
	r := Record{
		States:          d.SortedStates(),
		Alphabet:        append([]string{}, d.Alphabet...),
		AcceptingStates: d.SortedAccepting(),
		Transitions:     map[string]map[string]string(d.Transitions.Clone()),
	}
	if d.InitialState != "" {
		initial := d.InitialState
		r.InitialState = &initial
	}
	return r
}

// FromRecord converts a Record into a Definition. Missing fields become empty collections
// and a missing initial state stays unset. No validation is performed.
func FromRecord(r Record) *Definition {
	initial := ""
	if r.InitialState != nil {
		initial = *r.InitialState
	}
	return NewDefinition(r.States, r.Alphabet, initial, r.AcceptingStates, r.Transitions)
}
