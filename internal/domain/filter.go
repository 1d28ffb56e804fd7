package domain

// FilterAll is the sentinel dropdown value meaning "no constraint on this
// field". Sentinel-valued fields are never sent to the backend.
const FilterAll = "All"

const DefaultPageSize = 10

type SortKey string

const (
	SortDefault   SortKey = "Default"
	SortPriceAsc  SortKey = "PriceAsc"
	SortPriceDesc SortKey = "PriceDesc"
	SortYearDesc  SortKey = "YearDesc"
)

// Params maps the sort key to the backend's (sortBy, sortOrder) pair. The
// default key sends no sort parameters at all, leaving the order to the
// backend.
func (k SortKey) Params() (field, direction string, ok bool) {
	switch k {
	case SortPriceAsc:
		return "price", "asc", true
	case SortPriceDesc:
		return "price", "desc", true
	case SortYearDesc:
		return "year", "desc", true
	default:
		return "", "", false
	}
}

// Filter describes one catalog query. It is rebuilt per request and never
// persisted. Model matches the car name on the backend.
type Filter struct {
	Status   string
	Model    string
	Location string
	Sort     SortKey
	Page     int
	PageSize int
}

// NewFilter returns the unconstrained first-page filter the public listing
// starts with.
func NewFilter() Filter {
	return Filter{
		Status:   FilterAll,
		Model:    FilterAll,
		Location: FilterAll,
		Sort:     SortDefault,
		Page:     1,
		PageSize: DefaultPageSize,
	}
}
