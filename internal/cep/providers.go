package cep

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const maxBodyBytes = 1 << 20

// NewHTTPClient returns the client shared by both providers.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// CepLa queries http://cep.la/{cep}. Its payload is either an object or a
// single-element array of objects with uf/cidade/bairro/logradouro.
type CepLa struct {
	baseURL    string
	httpClient *http.Client
}

// NewCepLa constructs the cep.la adapter.
func NewCepLa(baseURL string, client *http.Client) *CepLa {
	return &CepLa{baseURL: strings.TrimRight(baseURL, "/"), httpClient: client}
}

// Name implements Provider.
func (c *CepLa) Name() string { return "cep.la" }

// Lookup implements Provider. A response without a UF counts as not found.
func (c *CepLa) Lookup(ctx context.Context, cep string) (Address, error) {
	body, status, err := get(ctx, c.httpClient, c.baseURL+"/"+cep)
	if err != nil {
		return Address{}, fmt.Errorf("cep.la: %w", err)
	}
	if status != http.StatusOK {
		return Address{}, fmt.Errorf("cep.la: HTTP %d", status)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return Address{}, fmt.Errorf("cep.la: resposta vazia: %w", ErrNotFound)
	}
	if !gjson.ValidBytes(body) {
		return Address{}, fmt.Errorf("cep.la: resposta não é JSON")
	}

	node := gjson.ParseBytes(body)
	if node.IsArray() {
		node = node.Get("0")
	}
	addr := Address{
		UF:         normalizeUF(node.Get("uf").String()),
		Cidade:     normalizeText(node.Get("cidade").String()),
		Bairro:     normalizeText(node.Get("bairro").String()),
		Logradouro: normalizeText(node.Get("logradouro").String()),
	}
	if addr.UF == "" {
		return Address{}, fmt.Errorf("cep.la: uf ausente: %w", ErrNotFound)
	}
	return addr, nil
}

// ViaCEP queries https://viacep.com.br/ws/{cep}/json/. Unknown codes come back
// as HTTP 200 with an "erro" flag.
type ViaCEP struct {
	baseURL    string
	httpClient *http.Client
}

// NewViaCEP constructs the ViaCEP adapter.
func NewViaCEP(baseURL string, client *http.Client) *ViaCEP {
	return &ViaCEP{baseURL: strings.TrimRight(baseURL, "/"), httpClient: client}
}

// Name implements Provider.
func (v *ViaCEP) Name() string { return "viacep" }

// Lookup implements Provider.
func (v *ViaCEP) Lookup(ctx context.Context, cep string) (Address, error) {
	body, status, err := get(ctx, v.httpClient, v.baseURL+"/"+cep+"/json/")
	if err != nil {
		return Address{}, err
	}
	if status != http.StatusOK {
		return Address{}, fmt.Errorf("erro ao consultar ViaCEP: HTTP %d", status)
	}
	if !gjson.ValidBytes(body) {
		return Address{}, fmt.Errorf("erro ao consultar ViaCEP: resposta não é JSON")
	}

	node := gjson.ParseBytes(body)
	// "erro" is a boolean in the legacy API and the string "true" in the current one.
	if node.Get("erro").Bool() {
		return Address{}, ErrNotFound
	}
	return Address{
		UF:         normalizeUF(node.Get("uf").String()),
		Cidade:     normalizeText(node.Get("localidade").String()),
		Bairro:     normalizeText(node.Get("bairro").String()),
		Logradouro: normalizeText(node.Get("logradouro").String()),
	}, nil
}

func get(ctx context.Context, client *http.Client, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func normalizeUF(s string) string {
	return cases.Upper(language.BrazilianPortuguese).String(normalizeText(s))
}
