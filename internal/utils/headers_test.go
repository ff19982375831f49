package utils

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/RecoveryAshes/sitescrape/internal/models"
)

func TestValidateHeader(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		value     string
		wantErr   bool
		wantField string
	}{
		{"User-Agent", "User-Agent", "Mozilla/5.0", false, ""},
		{"自定义头部", "X-Custom-Header", "value", false, ""},
		{"空值", "X-Empty", "", false, ""},
		{"禁止Host", "Host", "example.com", true, "name"},
		{"禁止小写content-length", "content-length", "10", true, "name"},
		{"空名称", "", "v", true, "name"},
		{"名称含空格", "Bad Name", "v", true, "name"},
		{"名称含冒号", "Bad:Name", "v", true, "name"},
		{"值含换行", "X-Inject", "a\r\nEvil: 1", true, "value"},
		{"值过长", "X-Long", strings.Repeat("a", MaxHeaderValueLength+1), true, "value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHeader(tt.header, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateHeader() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var ve *models.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("错误类型应为*models.ValidationError, got %T", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %s, want %s", ve.Field, tt.wantField)
			}
		})
	}
}

func TestValidateHeaders(t *testing.T) {
	ok := http.Header{"User-Agent": {"Bot/1.0"}, "Accept": {"*/*"}}
	if err := ValidateHeaders(ok); err != nil {
		t.Errorf("合法头部验证失败: %v", err)
	}

	bad := http.Header{"Accept": {"*/*"}, "Connection": {"close"}}
	if err := ValidateHeaders(bad); err == nil {
		t.Error("包含禁止头部应返回错误")
	}
}

func TestRedactHeaders(t *testing.T) {
	headers := http.Header{
		"User-Agent":    {"Mozilla/5.0"},
		"Authorization": {"Bearer abc.def.ghi"},
		"X-Api-Key":     {"sk-1234567890abcd"},
		"Cookie":        {"short"},
		"X-Empty":       {},
	}

	got := RedactHeaders(headers)

	if got["User-Agent"] != "Mozilla/5.0" {
		t.Errorf("普通头部不应脱敏: %q", got["User-Agent"])
	}
	if got["Authorization"] != "Bearer ***" {
		t.Errorf("Authorization = %q", got["Authorization"])
	}
	if got["X-Api-Key"] != "sk-1***abcd" {
		t.Errorf("X-Api-Key = %q", got["X-Api-Key"])
	}
	if got["Cookie"] != "***" {
		t.Errorf("Cookie = %q", got["Cookie"])
	}
	if _, ok := got["X-Empty"]; ok {
		t.Error("无值头部应被忽略")
	}
}
