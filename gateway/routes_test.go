package gateway

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Audience
	}{
		{"/jobs", AudienceUser},
		{"/jobs/42", AudienceUser},
		{"/quotes/job/3", AudienceUser},
		{"/wallet/balance", AudienceUser},
		{"/", AudienceUser},
		{"", AudienceUser},
		{"jobs", AudienceUser},
		{"/jobs/", AudienceUser},
		{"/jobs?status=open", AudienceUser},
		{"/administrators", AudienceUser},
		{"/admin", AudienceAdmin},
		{"/admin/", AudienceAdmin},
		{"/admin/users", AudienceAdmin},
		{"/admin/users/9/block", AudienceAdmin},
		{"/auth/login", AudienceAuth},
		{"/auth/register", AudienceAuth},
		{"/auth/refresh", AudienceAuth},
		{"/auth/refresh/", AudienceAuth},
		{"/admin/auth/login", AudienceAuth},
		{"/auth/login?next=/admin/users", AudienceAuth},
		{"/auth/me", AudienceUser},
	}
	for _, tt := range tests {
		if got := Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}
