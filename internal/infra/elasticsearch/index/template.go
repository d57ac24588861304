package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"

	"github.com/wikid/wikid/internal/infra/elasticsearch/common"
	esDocument "github.com/wikid/wikid/internal/infra/elasticsearch/document"
)

type TemplateName string
type Pattern = string
type Json = map[string]interface{}
type Mappings = map[string]interface{}

// Template defines a template to be applied when setup is run
type Template struct {
	name     TemplateName // ignored when serialising because the name doesn't start with a capital
	Patterns []Pattern    `json:"index_patterns"`
	Mappings Mappings     `json:"mappings,omitempty"`
}

func (t *Template) Name() TemplateName {
	return t.name
}

func NewTemplate(name TemplateName, patterns []Pattern, mappings Mappings) Template {
	return Template{name: name, Patterns: patterns, Mappings: mappings}
}

// TemplatesSetup holds a list of Templates and has the ability to actually
// send them to the server
type TemplatesSetup struct {
	esClient  *elasticsearch.Client
	Templates []Template
}

// Returns the default Template setter upper
func DefaultTemplateSetup(esClient *elasticsearch.Client) TemplatesSetup {
	return TemplatesSetup{
		esClient: esClient,
		Templates: []Template{
			WikidDocumentsTemplate,
			WikidRevisionsTemplate,
		},
	}
}

// Runs the setup
func (s *TemplatesSetup) Run(ctx context.Context) error {
	var errors []error
	for _, template := range s.Templates {
		if err := s.putTemplate(ctx, &template); err != nil {
			errors = append(errors, err)
		}
	}
	if len(errors) != 0 {
		return PutTemplateErrors{Errors: errors}
	} else {
		return nil
	}
}

// Checks if the current TemplatesSetup was run.
//
// This is currently a shallow check for template presence only.
func (s *TemplatesSetup) Check(ctx context.Context) error {
	indexTemplateNames := make([]string, 0, len(s.Templates))
	for _, t := range s.Templates {
		indexTemplateNames = append(indexTemplateNames, string(t.Name()))
	}

	indexTemplatesGetReq := esapi.IndicesGetTemplateRequest{Name: indexTemplateNames}

	rawResp, err := indexTemplatesGetReq.Do(context.Background(), s.esClient)
	if err != nil {
		return common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()
	switch rawResp.StatusCode {
	case 200:
		var mappings map[string]interface{}
		if err = json.NewDecoder(rawResp.Body).Decode(&mappings); err != nil {
			return common.JsonSerdesErr{Underlying: []error{err}}
		}
		var notPresent []string
		for _, name := range indexTemplateNames {
			if _, ok := mappings[name]; !ok {
				notPresent = append(notPresent, name)
			}
		}
		if len(notPresent) != 0 {
			return TemplatesNotInstalled{NotInstalled: notPresent}
		} else {
			return nil
		}
	case 404:
		return TemplatesNotInstalled{NotInstalled: indexTemplateNames}
	default:
		return common.UnexpectedEsStatusError(rawResp)
	}
}

func (s *TemplatesSetup) putTemplate(ctx context.Context, t *Template) error {
	asBytes, err := json.Marshal(t)
	log.Info().RawJSON("body", asBytes).Str("template_name", string(t.name)).Msg("Applying template")
	if err != nil {
		return common.JsonSerdesErr{Underlying: []error{err}}
	}
	putTemplateReq := esapi.IndicesPutTemplateRequest{
		Body: bytes.NewReader(asBytes),
		Name: string(t.name),
	}
	rawResp, err := putTemplateReq.Do(ctx, s.esClient)
	if err != nil {
		return common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()
	switch rawResp.StatusCode {
	case 200:
		return nil
	default:
		return common.UnexpectedEsStatusError(rawResp)
	}
}

type PutTemplateErrors struct {
	Errors []error
}

func (e PutTemplateErrors) Error() string {
	return fmt.Sprintf("Errors encountered [%v]", e.Errors)
}

type TemplatesNotInstalled struct {
	NotInstalled []string
}

func (t TemplatesNotInstalled) Error() string {
	return fmt.Sprintf("One or more app index templates were not installed. Please run the setup command to install them [%v]", t.NotInstalled)
}

// Templates

// Documents template. Slug, locale and the tag fields are keywords because
// lookups and listings filter on them exactly; titles get a text mapping for
// free-form search.
var WikidDocumentsTemplate = NewTemplate(
	".wikid_documents_index_template",
	[]Pattern{Pattern(esDocument.DocumentsIndexName)},
	Mappings{
		"_source": Json{
			"enabled": true,
		},
		"dynamic": true, // We use persistence models anyways, so we can make sure mappings don't get out of hand
		"properties": Json{
			"slug": Json{
				"type": "keyword",
			},
			"locale": Json{
				"type": "keyword",
			},
			"title": Json{
				"type": "text",
				"fields": Json{
					"keyword": Json{
						"type":         "keyword",
						"ignore_above": 256,
					},
				},
			},
			"current_revision_id": Json{
				"type": "long",
			},
			"parent_id": Json{
				"type": "keyword",
			},
			"tags": Json{
				"type": "keyword",
			},
			"review_tags": Json{
				"type": "keyword",
			},
			"localization_tags": Json{
				"type": "keyword",
			},
			"has_errors": Json{
				"type": "boolean",
			},
			"top_level": Json{
				"type": "boolean",
			},
			"metadata": Json{
				"properties": Json{
					"created_at": Json{
						"type": "date",
					},
					"modified_at": Json{
						"type": "date",
					},
				},
			},
		},
	},
)

// Revisions template. The id is mapped as a long so revision snapshots can be
// sorted on it; content is stored but not indexed because nothing searches
// revision bodies.
var WikidRevisionsTemplate = NewTemplate(
	".wikid_revisions_index_template",
	[]Pattern{Pattern(esDocument.RevisionsIndexName)},
	Mappings{
		"_source": Json{
			"enabled": true,
		},
		"dynamic": true,
		"properties": Json{
			"id": Json{
				"type": "long",
			},
			"document_id": Json{
				"type": "keyword",
			},
			"creator": Json{
				"type": "keyword",
			},
			"comment": Json{
				"type": "text",
			},
			"summary": Json{
				"type":  "text",
				"index": false,
			},
			"content": Json{
				"type":  "text",
				"index": false,
			},
			"created_at": Json{
				"type": "date",
			},
			"is_approved": Json{
				"type": "boolean",
			},
			"based_on_id": Json{
				"type": "long",
			},
			"metadata": Json{
				"properties": Json{
					"created_at": Json{
						"type": "date",
					},
					"modified_at": Json{
						"type": "date",
					},
				},
			},
		},
	},
)
