package utils_test

import (
	"testing"

	"catalog-backend/internal/utils"
)

func TestCreatePaginationMeta(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int64
		want  utils.PaginationMeta
	}{
		{
			name: "first of three pages", page: 1, limit: 10, total: 25,
			want: utils.PaginationMeta{Page: 1, Limit: 10, Total: 25, TotalPages: 3, HasNext: true},
		},
		{
			name: "last page", page: 3, limit: 10, total: 25,
			want: utils.PaginationMeta{Page: 3, Limit: 10, Total: 25, TotalPages: 3, HasPrevious: true},
		},
		{
			name: "empty set", page: 1, limit: 10, total: 0,
			want: utils.PaginationMeta{Page: 1, Limit: 10, TotalPages: 1},
		},
		{
			name: "zero limit", page: 1, limit: 0, total: 0,
			want: utils.PaginationMeta{Page: 1, Limit: 1, TotalPages: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.CreatePaginationMeta(tt.page, tt.limit, tt.total); got != tt.want {
				t.Errorf("CreatePaginationMeta() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
