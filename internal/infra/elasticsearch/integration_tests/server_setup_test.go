// +build integration

package integration_tests

import (
	"testing"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/stretchr/testify/assert"

	"github.com/wikid/wikid/internal/infra/elasticsearch/index"
	"github.com/wikid/wikid/internal/infra/server"
)

func Test_Server_Setup(t *testing.T) {
	// Other tests may have installed the templates already; start from scratch
	if err := deleteInstalledTemplates(); err != nil {
		t.Error(err)
		return
	}

	setup := server.NewSetup(esClient)

	err := setup.Check(ctx)
	assert.Error(t, err)

	err = setup.RunIfNeeded(ctx)
	assert.NoError(t, err)

	err = setup.Check(ctx)
	assert.NoError(t, err)

}

func deleteInstalledTemplates() error {
	for _, template := range index.DefaultTemplateSetup(esClient).Templates {
		deleteReq := esapi.IndicesDeleteTemplateRequest{Name: string(template.Name())}
		rawResp, err := deleteReq.Do(ctx, esClient)
		if err != nil {
			return err
		}
		rawResp.Body.Close()
	}
	return nil
}
