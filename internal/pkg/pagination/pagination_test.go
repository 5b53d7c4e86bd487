package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		perPage int
		total   int
		want    Page
	}{
		{
			name: "first page", page: 1, perPage: 10, total: 50,
			want: Page{Page: 1, PerPage: 10, TotalRecords: 50, TotalPages: 5, NextPage: intPtr(2)},
		},
		{
			name: "middle page", page: 3, perPage: 10, total: 50,
			want: Page{Page: 3, PerPage: 10, TotalRecords: 50, TotalPages: 5, PrevPage: intPtr(2), NextPage: intPtr(4)},
		},
		{
			name: "last page", page: 5, perPage: 10, total: 50,
			want: Page{Page: 5, PerPage: 10, TotalRecords: 50, TotalPages: 5, PrevPage: intPtr(4)},
		},
		{
			name: "no records", page: 1, perPage: 10, total: 0,
			want: Page{Page: 1, PerPage: 10, TotalRecords: 0, TotalPages: 0},
		},
		{
			name: "fewer records than a page", page: 1, perPage: 10, total: 5,
			want: Page{Page: 1, PerPage: 10, TotalRecords: 5, TotalPages: 1},
		},
		{
			name: "partial last page", page: 2, perPage: 10, total: 15,
			want: Page{Page: 2, PerPage: 10, TotalRecords: 15, TotalPages: 2, PrevPage: intPtr(1)},
		},
		{
			name: "exact multiple keeps next on first page", page: 1, perPage: 16, total: 32,
			want: Page{Page: 1, PerPage: 16, TotalRecords: 32, TotalPages: 2, NextPage: intPtr(2)},
		},
		{
			name: "page past the end is not clamped", page: 9, perPage: 10, total: 50,
			want: Page{Page: 9, PerPage: 10, TotalRecords: 50, TotalPages: 5, PrevPage: intPtr(8)},
		},
		{
			name: "zero per page", page: 1, perPage: 0, total: 50,
			want: Page{Page: 1, PerPage: 0, TotalRecords: 50, TotalPages: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Paginate(tt.page, tt.perPage, tt.total))
		})
	}
}

func TestPaginateDeterministic(t *testing.T) {
	require.Equal(t, Paginate(2, 7, 30), Paginate(2, 7, 30))
}

func TestPaginateProperties(t *testing.T) {
	for perPage := 1; perPage <= 7; perPage++ {
		for total := 0; total <= 40; total++ {
			for page := 1; page <= 8; page++ {
				p := Paginate(page, perPage, total)
				wantPages := 0
				if total > 0 {
					wantPages = total / perPage
					if total%perPage != 0 {
						wantPages++
					}
				}
				require.Equal(t, wantPages, p.TotalPages)
				if page > 1 {
					require.NotNil(t, p.PrevPage)
					require.Equal(t, page-1, *p.PrevPage)
				} else {
					require.Nil(t, p.PrevPage)
				}
				if page < wantPages {
					require.NotNil(t, p.NextPage)
					require.Equal(t, page+1, *p.NextPage)
				} else {
					require.Nil(t, p.NextPage)
				}
			}
		}
	}
}

func TestOffset(t *testing.T) {
	require.Equal(t, 0, Offset(1, 16))
	require.Equal(t, 32, Offset(3, 16))
	require.Equal(t, 0, Offset(0, 16))
	require.Equal(t, 0, Offset(2, 0))
}

func TestOffsetSaturates(t *testing.T) {
	require.Equal(t, math.MaxInt, Offset(math.MaxInt, 16))
	require.Equal(t, math.MaxInt, Offset(576460752303423489, 16))
	require.Equal(t, math.MaxInt/16*16, Offset(math.MaxInt/16+1, 16))
	require.GreaterOrEqual(t, Offset(math.MaxInt/2, 3), 0)
}
