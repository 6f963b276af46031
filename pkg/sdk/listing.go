package sdk

import (
	"context"

	"github.com/backoffice-kit/backoffice/pkg/schema"
)

// ListAllPageSize is the page size ListAll requests.
const ListAllPageSize = 100

// ListAll walks every page of r's owner listing for search and returns the
// owners in listing order. It stops early on an empty page so a listing
// that shrinks mid-walk still terminates.
func ListAll(ctx context.Context, r OwnerReader, search string) ([]schema.Owner, error) {
	var owners []schema.Owner
	for page := 1; ; page++ {
		resp, err := r.List(ctx, schema.ListQuery{Page: page, PageSize: ListAllPageSize, Search: search})
		if err != nil {
			return nil, err
		}
		owners = append(owners, resp.Data...)
		if len(resp.Data) == 0 || len(owners) >= resp.Total {
			return owners, nil
		}
	}
}
