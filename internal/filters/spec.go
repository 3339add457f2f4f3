// Package filters validates and normalizes search query parameters.
//
// Each entity declares a Spec: the ordered list of query keys it recognizes
// and how each one is checked. Validate reads only those keys from the raw
// query and returns a Set of typed values ready for the WHERE builder.
package filters

// Kind says how a filter key is validated and later turned into SQL.
type Kind int

const (
	// Substring filters are matched with a case-insensitive pattern.
	Substring Kind = iota
	// Min is the lower bound of a numeric range.
	Min
	// Max is the upper bound of a numeric range.
	Max
	// Flag is a true/false switch that adds a fixed predicate when true.
	Flag
)

func (k Kind) String() string {
	switch k {
	case Substring:
		return "substring"
	case Min:
		return "numeric-min"
	case Max:
		return "numeric-max"
	case Flag:
		return "boolean-flag"
	default:
		return "unknown"
	}
}

// Numeric reports whether values of this kind parse as numbers.
func (k Kind) Numeric() bool { return k == Min || k == Max }

// Key is one recognized query parameter.
type Key struct {
	Name string
	Kind Kind
	// Pair names the Max key bounding a Min key. Empty for other kinds.
	Pair string
}

// Spec is the declared, ordered set of filters for one entity.
type Spec []Key

// CompanySpec lists the company search parameters.
var CompanySpec = Spec{
	{Name: "name", Kind: Substring},
	{Name: "minEmployees", Kind: Min, Pair: "maxEmployees"},
	{Name: "maxEmployees", Kind: Max},
}

// JobSpec lists the job search parameters.
var JobSpec = Spec{
	{Name: "title", Kind: Substring},
	{Name: "minSalary", Kind: Min, Pair: "maxSalary"},
	{Name: "maxSalary", Kind: Max},
	{Name: "hasEquity", Kind: Flag},
}

// Set holds validated filter values keyed by filter name: string for
// Substring, float64 for Min/Max and bool for Flag.
type Set map[string]any

// Empty reports whether no filter was supplied.
func (s Set) Empty() bool { return len(s) == 0 }
