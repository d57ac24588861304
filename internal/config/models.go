package config

import "time"

// TopLevel wraps the app config so that the config file (and env vars) can be
// namespaced under "wikid"
type TopLevel struct {
	Wikid Wikid `json:"wikid" mapstructure:"wikid"`
}

type Wikid struct {
	Server App `json:"server" mapstructure:"server"`
}

type App struct {
	BindAddress     string              `json:"bind_address" mapstructure:"bind_address"`
	ShutdownTimeout time.Duration       `json:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	Elasticsearch   ElasticsearchClient `json:"elasticsearch" mapstructure:"elasticsearch"`
	ApmClient       *ApmClient          `json:"apm,omitempty" mapstructure:"apm"`
	Auth            *Auth               `json:"auth,omitempty" mapstructure:"auth"`
	Logging         *Logging            `json:"logging,omitempty" mapstructure:"logging"`
	Documents       Documents           `json:"documents" mapstructure:"documents"`
}

type Logging struct {
	Json  *bool   `json:"json,omitempty" mapstructure:"json"`
	File  *string `json:"file,omitempty" mapstructure:"file"`
	Level *string `json:"level,omitempty" mapstructure:"level"`
}

type ElasticsearchClient struct {
	Addresses []string       `json:"addresses" mapstructure:"addresses"`
	User      *BasicAuthUser `json:"user,omitempty" mapstructure:"user"`
}

type ApmClient struct {
	Address     *string `json:"address,omitempty" mapstructure:"address"`
	SecretToken *string `json:"secret_token,omitempty" mapstructure:"secret_token"`
}

type Documents struct {
	Defaults     DocumentsDefaults `json:"defaults" mapstructure:"defaults"`
	IndexRefresh IndexRefresh      `json:"index_refresh" mapstructure:"index_refresh"`
}

type DocumentsDefaults struct {
	// ListPerPage is the page size for Document (and tag) listings
	ListPerPage uint `json:"list_per_page" mapstructure:"list_per_page"`
	// ScrollSize and ScrollTtl control how revision snapshots are scrolled
	// out of Elasticsearch
	ScrollSize uint          `json:"scroll_size" mapstructure:"scroll_size"`
	ScrollTtl  time.Duration `json:"scroll_ttl" mapstructure:"scroll_ttl"`
}

type IndexRefresh struct {
	RunInterval time.Duration `json:"run_interval" mapstructure:"run_interval"`
}

type Auth struct {
	BasicAuth []BasicAuthUser `json:"basic_auth" mapstructure:"basic_auth"`
}

type BasicAuthUser struct {
	Name     string `json:"name" mapstructure:"name"`
	Password string `json:"password" mapstructure:"password"`
}
