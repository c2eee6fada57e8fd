package handlers

import "testing"

func TestParsePaginationParamsDefaults(t *testing.T) {
	page, limit, err := parsePaginationParams("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 1 || limit != 20 {
		t.Fatalf("expected defaults 1/20, got %d/%d", page, limit)
	}
}

func TestParsePaginationParamsRejectsBadInput(t *testing.T) {
	cases := [][2]string{
		{"0", "10"},
		{"-1", "10"},
		{"abc", "10"},
		{"1", "0"},
		{"1", "xyz"},
	}
	for _, tc := range cases {
		if _, _, err := parsePaginationParams(tc[0], tc[1]); err == nil {
			t.Fatalf("expected error for page=%q limit=%q", tc[0], tc[1])
		}
	}
}

func TestOrderSortWhitelistsFields(t *testing.T) {
	sort := orderSort("totalAmount", "desc")
	if sort[0].Key != "totalAmount" || sort[0].Value != -1 {
		t.Fatalf("expected totalAmount descending, got %v", sort)
	}

	sort = orderSort("orderStatus", "asc")
	if sort[0].Key != "orderStatus" || sort[0].Value != 1 {
		t.Fatalf("expected orderStatus ascending, got %v", sort)
	}

	// unknown fields fall back instead of letting callers sort by anything
	sort = orderSort("passwordHash", "asc")
	if sort[0].Key != "orderDate" {
		t.Fatalf("expected fallback to orderDate, got %v", sort)
	}
}

func TestBuildPageMetaOutOfRangePage(t *testing.T) {
	meta := buildPageMeta(10, 20, 45)
	if meta.TotalElements != 45 {
		t.Fatalf("expected totalElements 45, got %d", meta.TotalElements)
	}
	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", meta.TotalPages)
	}
	if !meta.LastPage {
		t.Fatal("expected out-of-range page to report lastPage")
	}
}

func TestBuildPageMetaExactFit(t *testing.T) {
	meta := buildPageMeta(2, 20, 40)
	if meta.TotalPages != 2 {
		t.Fatalf("expected 2 pages, got %d", meta.TotalPages)
	}
	if !meta.LastPage {
		t.Fatal("expected page 2 of 2 to be the last page")
	}
}
