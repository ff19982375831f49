package core

import (
	"errors"
	"testing"

	"github.com/RecoveryAshes/sitescrape/internal/models"
)

func TestHeaderManager_GetMergedHeaders(t *testing.T) {
	t.Run("默认User-Agent", func(t *testing.T) {
		hm, err := NewHeaderManager(nil, nil)
		if err != nil {
			t.Fatalf("创建HeaderManager失败: %v", err)
		}

		if ua := hm.GetMergedHeaders().Get("User-Agent"); ua != DefaultUserAgent {
			t.Errorf("期望User-Agent=%q, 实际=%q", DefaultUserAgent, ua)
		}
	})

	t.Run("配置覆盖默认, 命令行覆盖配置", func(t *testing.T) {
		configHeaders := map[string]string{
			"User-Agent": "ConfigBot/1.0",
			"X-Source":   "config",
			"Accept":     "text/html",
		}
		cliHeaders := []string{
			"User-Agent: CliBot/2.0",
			"X-Source: cli",
		}

		hm, err := NewHeaderManager(configHeaders, cliHeaders)
		if err != nil {
			t.Fatalf("创建HeaderManager失败: %v", err)
		}

		headers := hm.GetMergedHeaders()
		tests := map[string]string{
			"User-Agent": "CliBot/2.0",
			"X-Source":   "cli",
			"Accept":     "text/html",
		}
		for name, want := range tests {
			if got := headers.Get(name); got != want {
				t.Errorf("%s: 期望%q, 实际%q", name, want, got)
			}
		}
	})

	t.Run("配置头部名称大小写归一", func(t *testing.T) {
		hm, err := NewHeaderManager(map[string]string{"user-agent": "lower/1.0"}, nil)
		if err != nil {
			t.Fatalf("创建HeaderManager失败: %v", err)
		}

		if ua := hm.GetMergedHeaders().Get("User-Agent"); ua != "lower/1.0" {
			t.Errorf("期望配置覆盖默认User-Agent, 实际=%q", ua)
		}
	})
}

func TestHeaderManager_GetSafeHeaders(t *testing.T) {
	hm, err := NewHeaderManager(nil, []string{
		"User-Agent: CustomBot/1.0",
		"Authorization: Bearer secret-token-12345",
		"X-API-Key: api-key-67890",
	})
	if err != nil {
		t.Fatalf("创建HeaderManager失败: %v", err)
	}

	safe := hm.GetSafeHeaders()

	if safe["User-Agent"] != "CustomBot/1.0" {
		t.Error("普通头部不应该被脱敏")
	}
	if safe["Authorization"] != "Bearer ***" {
		t.Errorf("期望Authorization='Bearer ***', 实际=%q", safe["Authorization"])
	}
	if safe["X-Api-Key"] == "api-key-67890" {
		t.Error("X-API-Key应该被脱敏")
	}
}

func TestHeaderManager_GetHeaders(t *testing.T) {
	t.Run("非法命令行参数返回错误", func(t *testing.T) {
		for _, raw := range []string{"InvalidFormat", ": value", "   : x"} {
			if _, err := NewHeaderManager(nil, []string{raw}); err == nil {
				t.Errorf("%q: 期望返回错误, 但成功了", raw)
			}
		}
	})

	t.Run("禁止头部返回验证错误", func(t *testing.T) {
		hm, err := NewHeaderManager(nil, []string{"Content-Length: 100"})
		if err != nil {
			t.Fatalf("创建HeaderManager失败: %v", err)
		}

		_, err = hm.GetHeaders()
		var validationErr *models.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("期望ValidationError, 实际: %v", err)
		}
	})

	t.Run("配置头部值非法", func(t *testing.T) {
		hm, err := NewHeaderManager(map[string]string{"X-Bad": "a\r\nInjected: 1"}, nil)
		if err != nil {
			t.Fatalf("创建HeaderManager失败: %v", err)
		}

		if _, err := hm.GetHeaders(); err == nil {
			t.Error("期望配置头部验证失败")
		}
	})

	t.Run("合法头部", func(t *testing.T) {
		hm, err := NewHeaderManager(map[string]string{"Accept-Language": "en"}, nil)
		if err != nil {
			t.Fatalf("创建HeaderManager失败: %v", err)
		}

		headers, err := hm.GetHeaders()
		if err != nil {
			t.Fatalf("GetHeaders失败: %v", err)
		}
		if headers.Get("Accept-Language") != "en" {
			t.Errorf("期望Accept-Language=en, 实际=%q", headers.Get("Accept-Language"))
		}
	})
}

func TestSplitHeaderFlag(t *testing.T) {
	tests := []struct {
		raw       string
		wantName  string
		wantValue string
		wantErr   bool
	}{
		{"User-Agent: Bot/1.0", "User-Agent", "Bot/1.0", false},
		{"X-Token:  abc:def ", "X-Token", "abc:def", false},
		{"X-Empty:", "X-Empty", "", false},
		{"NoColon", "", "", true},
		{": value", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			name, value, err := splitHeaderFlag(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitHeaderFlag(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if name != tt.wantName || value != tt.wantValue {
				t.Errorf("splitHeaderFlag(%q) = (%q, %q), want (%q, %q)", tt.raw, name, value, tt.wantName, tt.wantValue)
			}
		})
	}
}
