package sorter

import "testing"

func TestParseCriterion(t *testing.T) {
	tests := []struct {
		in      string
		want    SortCriterion
		wantErr bool
	}{
		{in: "date", want: ByDate},
		{in: "name", want: ByName},
		{in: "size", want: BySize},
		{in: "", wantErr: true},
		{in: "Date", wantErr: true},
		{in: "mtime", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseCriterion(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseCriterion(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCriterion(%q) error = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCriterion(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsImageFile(t *testing.T) {
	for _, path := range []string{"a.jpg", "b.JPEG", "c.png", "d.NEF", "/x/y/e.cr2"} {
		if !IsImageFile(path) {
			t.Errorf("IsImageFile(%q) = false, want true", path)
		}
	}
	for _, path := range []string{"a.txt", "b.mp4", "jpg", "noext", "a.jpg.bak"} {
		if IsImageFile(path) {
			t.Errorf("IsImageFile(%q) = true, want false", path)
		}
	}
}
