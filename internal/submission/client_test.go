package submission

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nfrund/aprovados/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// received captures what the fake backend saw.
type received struct {
	data          Aprovado
	hasImage      bool
	imageName     string
	imageType     string
	imageContents string
}

func fakeBackend(t *testing.T, status int, respBody string, got *received) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(10<<20))

		require.NoError(t, json.Unmarshal([]byte(r.FormValue(FieldData)), &got.data))
		if f, fh, err := r.FormFile(FieldImagem); err == nil {
			defer f.Close()
			b, _ := io.ReadAll(f)
			got.hasImage = true
			got.imageName = fh.Filename
			got.imageType = fh.Header.Get("Content-Type")
			got.imageContents = string(b)
		}

		w.WriteHeader(status)
		_, _ = io.WriteString(w, respBody)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFromDraft_DropsBlankExams(t *testing.T) {
	d := domain.Draft{
		Nome:      "Ana",
		Email:     "ana@example.com",
		Telefone:  "(11) 22233-4455",
		Concursos: []string{"INSS", "", "   ", "TRT2"},
	}
	want := Aprovado{
		Nome:      "Ana",
		Email:     "ana@example.com",
		Telefone:  "(11) 22233-4455",
		Concursos: []string{"INSS", "TRT2"},
	}
	if diff := cmp.Diff(want, FromDraft(d)); diff != "" {
		t.Errorf("FromDraft() mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_Submit_Success(t *testing.T) {
	var got received
	srv := fakeBackend(t, http.StatusCreated, `{"id": 7}`, &got)
	client := NewClient(srv.URL, srv.Client())

	a := Aprovado{Nome: "Ana", Email: "ana@example.com", Telefone: "(11) 22233-4455", Concursos: []string{"INSS"}}
	photo := &Photo{Filename: "ana.png", ContentType: "image/png", Content: strings.NewReader("png-bytes")}

	result, err := client.Submit(context.Background(), a, photo)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"id": float64(7)}, result)
	assert.Equal(t, a, got.data)
	assert.True(t, got.hasImage)
	assert.Equal(t, "ana.png", got.imageName)
	assert.Equal(t, "image/png", got.imageType)
	assert.Equal(t, "png-bytes", got.imageContents)
}

func TestClient_Submit_WithoutPhoto(t *testing.T) {
	var got received
	srv := fakeBackend(t, http.StatusOK, `{}`, &got)
	client := NewClient(srv.URL, srv.Client())

	_, err := client.Submit(context.Background(), Aprovado{Nome: "Ana"}, nil)
	require.NoError(t, err)

	assert.False(t, got.hasImage)
	assert.Equal(t, []string{}, got.data.Concursos, "concursos is always an array")
}

func TestClient_Submit_NonSuccessStatus(t *testing.T) {
	var got received
	srv := fakeBackend(t, http.StatusBadRequest, "nome obrigatorio", &got)
	client := NewClient(srv.URL, srv.Client())

	_, err := client.Submit(context.Background(), Aprovado{Nome: "Ana"}, nil)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, "nome obrigatorio", statusErr.Body)
	assert.Equal(t, "Erro 400: Bad Request", statusErr.Error())
}

func TestClient_Submit_InvalidJSON(t *testing.T) {
	var got received
	srv := fakeBackend(t, http.StatusOK, "<html>ok</html>", &got)
	client := NewClient(srv.URL, srv.Client())

	_, err := client.Submit(context.Background(), Aprovado{}, nil)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Submit_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, nil)
	_, err := client.Submit(context.Background(), Aprovado{}, nil)
	require.Error(t, err)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestBuildPayload_EscapesFilename(t *testing.T) {
	body, ct, err := BuildPayload(Aprovado{}, &Photo{Filename: `a"b.png`, Content: strings.NewReader("x")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ct, "multipart/form-data; boundary="))

	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `filename="a\"b.png"`)
	assert.Contains(t, string(raw), "Content-Type: application/octet-stream")
}

func TestNewClient_DefaultEndpoint(t *testing.T) {
	assert.Equal(t, DefaultEndpoint, NewClient("", nil).Endpoint())
}
