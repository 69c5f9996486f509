package request

import (
	"fmt"
	"net/url"

	"shareit/pkg/utils"
)

// BookingListQuery carries the raw listing parameters. From and Size are nil when absent.
type BookingListQuery struct {
	State string
	From  *int
	Size  *int
}

// ParseListQuery reads state, from and size from the query string.
// The from/size pairing rule is applied later by utils.PageFromParams.
func ParseListQuery(values url.Values) (*BookingListQuery, error) {
	query := &BookingListQuery{State: values.Get("state")}

	for _, param := range []struct {
		name string
		dst  **int
	}{
		{"from", &query.From},
		{"size", &query.Size},
	} {
		n, ok, err := utils.ParseOptionalInt(values.Get(param.name))
		if err != nil {
			return nil, fmt.Errorf("%w: %s is not an integer", utils.ErrInvalidPagination, param.name)
		}
		if ok {
			*param.dst = &n
		}
	}

	return query, nil
}
