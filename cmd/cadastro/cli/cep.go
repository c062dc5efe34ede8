package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/odyssey-erp/cadastro/internal/cep"
)

// ExitInvalid is returned when the CEP could not be resolved.
const ExitInvalid = 10

// Resolver is the address lookup used by the command.
type Resolver interface {
	Resolve(ctx context.Context, raw string) cep.Result
}

// CEPOpsCLI runs postal code lookups from the terminal.
type CEPOpsCLI struct {
	resolver Resolver
}

// NewCEPOpsCLI constructs the helper around resolver.
func NewCEPOpsCLI(resolver Resolver) (*CEPOpsCLI, error) {
	if resolver == nil {
		return nil, errors.New("cep cli: resolver not configured")
	}
	return &CEPOpsCLI{resolver: resolver}, nil
}

// CEPLookupOptions defines available flags for the cep command.
type CEPLookupOptions struct {
	Code       string
	JSONOutput bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// LookupCommand resolves opts.Code and prints the outcome.
func (c *CEPOpsCLI) LookupCommand(ctx context.Context, opts CEPLookupOptions) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if strings.TrimSpace(opts.Code) == "" {
		_, _ = fmt.Fprintln(opts.Stderr, "cep: a postal code argument is required")
		return 1
	}

	result := c.resolver.Resolve(ctx, opts.Code)
	if opts.JSONOutput {
		if err := json.NewEncoder(opts.Stdout).Encode(result); err != nil {
			_, _ = fmt.Fprintf(opts.Stderr, "cep: encode json: %v\n", err)
			return 1
		}
	} else {
		renderLookupHuman(opts.Stdout, result)
	}
	if !result.Valido {
		return ExitInvalid
	}
	return 0
}

func renderLookupHuman(out io.Writer, result cep.Result) {
	if !result.Valido {
		_, _ = fmt.Fprintf(out, "CEP %s inválido: %s\n", result.CEP, result.Mensagem)
		return
	}
	_, _ = fmt.Fprintf(out, "CEP %s\n", result.CEP)
	_, _ = fmt.Fprintf(out, " logradouro: %s\n", result.Logradouro)
	_, _ = fmt.Fprintf(out, " bairro:     %s\n", result.Bairro)
	_, _ = fmt.Fprintf(out, " cidade:     %s/%s\n", result.Cidade, result.UF)
}
