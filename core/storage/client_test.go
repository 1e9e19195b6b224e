package storage_test

import (
	"testing"

	"md-table-sync/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     storage.Config
		wantErr bool
	}{
		{"PlainEndpoint", storage.Config{Endpoint: "localhost:9000", AccessKey: "key", SecretKey: "secret", Region: "us-east-1"}, false},
		{"SchemeIsStripped", storage.Config{Endpoint: "https://minio.internal", UseSSL: true, TimeoutSeconds: 5}, false},
		{"ZeroTimeoutUsesDefault", storage.Config{Endpoint: "http://localhost:9000", TimeoutSeconds: 0}, false},
		{"EndpointWithPath", storage.Config{Endpoint: "localhost:9000/handbook"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, client)
				return
			}
			require.NoError(t, err)
			assert.Implements(t, (*storage.Client)(nil), client)

			// a document store can be built over it without touching the network
			assert.NotNil(t, storage.NewObjectStore(client))
		})
	}
}
