package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleValues implements ValuesAPI against the Google Sheets API.
// The authenticated service is built lazily on first use; the OAuth
// token is read from a local file and persisted back whenever the
// library refreshes it, so it survives process restarts.
type GoogleValues struct {
	spreadsheetID   string
	credentialsFile string
	tokenFile       string

	once    sync.Once
	svc     *sheets.Service
	initErr error
}

func NewGoogleValues(spreadsheetID, credentialsFile, tokenFile string) *GoogleValues {
	return &GoogleValues{
		spreadsheetID:   spreadsheetID,
		credentialsFile: credentialsFile,
		tokenFile:       tokenFile,
	}
}

func (g *GoogleValues) service(ctx context.Context) (*sheets.Service, error) {
	g.once.Do(func() {
		g.svc, g.initErr = g.buildService(ctx)
	})
	return g.svc, g.initErr
}

func (g *GoogleValues) buildService(ctx context.Context) (*sheets.Service, error) {
	secrets, err := os.ReadFile(g.credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read client secrets: %w", err)
	}

	conf, err := google.ConfigFromJSON(secrets, sheets.SpreadsheetsScope, sheets.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("parse client secrets: %w", err)
	}

	tok, err := tokenFromFile(g.tokenFile)
	if err != nil {
		return nil, fmt.Errorf("no cached token: complete the authorization flow and place the token at %s: %w", g.tokenFile, err)
	}

	ts := &savingTokenSource{
		src:  conf.TokenSource(ctx, tok),
		path: g.tokenFile,
		last: tok.AccessToken,
	}

	svc, err := sheets.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("build sheets service: %w", err)
	}
	return svc, nil
}

func (g *GoogleValues) Get(ctx context.Context, readRange string) ([][]string, error) {
	svc, err := g.service(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.Get(g.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("values get %s: %w", readRange, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, r := range resp.Values {
		row := make([]string, 0, len(r))
		for _, v := range r {
			row = append(row, fmt.Sprint(v))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (g *GoogleValues) Update(ctx context.Context, writeRange string, values [][]string) error {
	svc, err := g.service(ctx)
	if err != nil {
		return err
	}

	cells := make([][]interface{}, 0, len(values))
	for _, row := range values {
		r := make([]interface{}, 0, len(row))
		for _, v := range row {
			r = append(r, v)
		}
		cells = append(cells, r)
	}

	_, err = svc.Spreadsheets.Values.
		Update(g.spreadsheetID, writeRange, &sheets.ValueRange{Values: cells}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("values update %s: %w", writeRange, err)
	}
	return nil
}

// savingTokenSource persists the token back to disk whenever the
// wrapped source hands out a refreshed one.
type savingTokenSource struct {
	src  oauth2.TokenSource
	path string

	mu   sync.Mutex
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		if err := saveToken(s.path, tok); err != nil {
			slog.Warn("failed to persist refreshed token", "path", s.path, "error", err)
		}
	}
	return tok, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(tok)
}
