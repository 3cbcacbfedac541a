package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/nfrund/aprovados/internal/domain"
	"github.com/nfrund/aprovados/internal/logging"
	"github.com/nfrund/aprovados/internal/phone"
	"github.com/nfrund/aprovados/internal/submission"
	"github.com/spf13/cobra"
)

var (
	submitNome      string
	submitEmail     string
	submitTelefone  string
	submitConcursos []string
	submitImagem    string
	submitEndpoint  string
	submitTimeout   time.Duration
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Send one registration to the backend",
	Long: `Validates the registration the same way the web form does and sends it
as multipart form data. The phone is masked before sending and blank exams
are dropped. On success the backend's JSON answer is printed.

Examples:
  aprovados-cli submit --nome "Maria Silva" --email maria@example.com \
    --telefone 11987654321 --concurso "TRF3 - Analista" --concurso "INSS - Técnico"

  aprovados-cli submit ... --imagem foto.png --endpoint http://api.local/api/aprovados`,
	RunE: runSubmit,
}

func runSubmit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL"))

	draft := domain.NewDraft()
	draft.Nome = submitNome
	draft.Email = submitEmail
	draft.Telefone = phone.Format(submitTelefone)
	draft.SetConcursos(submitConcursos)
	if err := draft.Validate(); err != nil {
		return err
	}

	var photo *submission.Photo
	if submitImagem != "" {
		f, err := fs.Open(submitImagem)
		if err != nil {
			return fmt.Errorf("open image: %w", err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stat image: %w", err)
		}
		contentType := mime.TypeByExtension(filepath.Ext(submitImagem))
		policy := domain.DefaultPhotoPolicy()
		if err := policy.Check(info.Size(), contentType); err != nil {
			return err
		}
		if err := policy.CheckName(filepath.Base(submitImagem)); err != nil {
			return err
		}
		photo = &submission.Photo{
			Filename:    filepath.Base(submitImagem),
			ContentType: contentType,
			Content:     f,
		}
	}

	client := submission.NewClient(submitEndpoint, &http.Client{Timeout: submitTimeout}, submission.WithLogger(logger))
	result, err := client.Submit(ctx, submission.FromDraft(draft), photo)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func defaultEndpoint() string {
	if v := os.Getenv("APROVADOS_ENDPOINT"); v != "" {
		return v
	}
	return submission.DefaultEndpoint
}

func init() {
	rootCmd.AddCommand(submitCmd)

	f := submitCmd.Flags()
	f.StringVar(&submitNome, "nome", "", "Full name")
	f.StringVar(&submitEmail, "email", "", "E-mail address")
	f.StringVar(&submitTelefone, "telefone", "", "Phone number, masked before sending")
	f.StringArrayVar(&submitConcursos, "concurso", nil, "Exam and position; repeat for several")
	f.StringVar(&submitImagem, "imagem", "", "Optional PNG or JPEG photo")
	f.StringVar(&submitEndpoint, "endpoint", defaultEndpoint(), "Backend URL (env APROVADOS_ENDPOINT)")
	f.DurationVar(&submitTimeout, "timeout", 30*time.Second, "Request timeout")
	_ = submitCmd.MarkFlagRequired("nome")
	_ = submitCmd.MarkFlagRequired("email")
	_ = submitCmd.MarkFlagRequired("telefone")
	_ = submitCmd.MarkFlagRequired("concurso")
}
