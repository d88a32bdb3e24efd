package smartrecruiters

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const reportingEndpoint = "reporting-api/v201804/reports"

// HTTPError : réponse non-2xx de l'API (avec le message renvoyé, si présent)
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("smartrecruiters HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("smartrecruiters HTTP %d", e.StatusCode)
}

// ReportFile : une entrée de statut de génération. Plusieurs entrées peuvent
// exister pour un même rapport, la plus récente (schedulingDate) fait foi.
type ReportFile struct {
	SchedulingDate   string `json:"schedulingDate"`
	ReportFileStatus string `json:"reportFileStatus"`
}

type filesPage struct {
	Content  []ReportFile `json:"content"`
	NextPage string       `json:"nextPage"`
}

// Client : session vers l'API reporting, le token est envoyé sur chaque requête
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{},
	}
}

func (c *Client) reportURL(reportID string) string {
	return fmt.Sprintf("%s/%s/%s/files", c.BaseURL, reportingEndpoint, reportID)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-SmartToken", c.Token)
	return c.HTTP.Do(req)
}

// Generate déclenche une exécution ad-hoc du rapport et renvoie le statut
// initial (reportFileStatus). Une réponse non-2xx est remontée en *HTTPError.
func (c *Client) Generate(reportID string) (string, error) {
	req, err := http.NewRequest(http.MethodPost, c.reportURL(reportID), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &e)
		return "", &HTTPError{StatusCode: resp.StatusCode, Message: e.Message}
	}
	var out struct {
		ReportFileStatus string `json:"reportFileStatus"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("generate %s: %w", reportID, err)
	}
	return out.ReportFileStatus, nil
}

// ListFiles remonte toutes les entrées de statut, en suivant la pagination
// page/nextPage jusqu'au bout.
func (c *Client) ListFiles(reportID string) ([]ReportFile, error) {
	var all []ReportFile
	nextPage := ""
	for {
		req, err := http.NewRequest(http.MethodGet, c.reportURL(reportID), nil)
		if err != nil {
			return nil, err
		}
		if nextPage != "" {
			q := req.URL.Query()
			q.Set("page", nextPage)
			req.URL.RawQuery = q.Encode()
		}
		resp, err := c.do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, &HTTPError{StatusCode: resp.StatusCode}
		}
		var page filesPage
		if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("list files %s: %w", reportID, err)
		}
		resp.Body.Close()
		all = append(all, page.Content...)
		if page.NextPage == "" {
			break
		}
		nextPage = page.NextPage
	}
	return all, nil
}

// DownloadRecent télécharge les données du dernier fichier généré (CSV brut)
func (c *Client) DownloadRecent(reportID string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.reportURL(reportID)+"/recent/data", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}
