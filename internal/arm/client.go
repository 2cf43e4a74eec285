// Package arm queries the Azure Resource Manager control plane for the models
// each Cognitive Services location offers.
package arm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	azarm "github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	azruntime "github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cognitiveservices/armcognitiveservices"
	"github.com/mwiater/modelmap/internal/catalog"
	"github.com/mwiater/modelmap/internal/logging"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
)

const (
	// defaultRequestTimeout bounds a single page request when none is configured.
	defaultRequestTimeout = 60 * time.Second
	// maxPages stops runaway nextLink chains.
	maxPages = 50
)

// APIError is a non-2xx response from the control plane, condensed to the
// ARM error code and message.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Err        *azcore.ResponseError
}

func (e *APIError) Error() string {
	if e.Code == "" && e.Message == "" {
		return fmt.Sprintf("arm: status %d", e.StatusCode)
	}
	return fmt.Sprintf("arm: status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap returns the SDK response error.
func (e *APIError) Unwrap() error {
	if e.Err == nil {
		return nil
	}
	return e.Err
}

// Options configures a Client.
type Options struct {
	// Endpoint is the ARM base URL; empty selects the public cloud.
	Endpoint string
	// APIVersion overrides the SDK's api-version when set.
	APIVersion string
	// Timeout bounds each page request.
	Timeout time.Duration
	// Transport replaces the SDK's HTTP transport, mainly for tests.
	Transport policy.Transporter
}

// Client lists models for one subscription, one location at a time.
type Client struct {
	Subscription string
	models       *armcognitiveservices.ModelsClient
}

// NewClient returns a Client that authenticates every request with tokens from ts.
// Retries are disabled; a failed region is reported once and skipped by the caller.
func NewClient(subscription string, ts oauth2.TokenSource, opts Options) (*Client, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/")
	if endpoint == "" {
		endpoint = strings.TrimRight(cloud.AzurePublic.Services[cloud.ResourceManager].Endpoint, "/")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	clientOpts := &azarm.ClientOptions{
		ClientOptions: policy.ClientOptions{
			Cloud: cloud.Configuration{
				ActiveDirectoryAuthorityHost: cloud.AzurePublic.ActiveDirectoryAuthorityHost,
				Services: map[cloud.ServiceName]cloud.ServiceConfiguration{
					cloud.ResourceManager: {Endpoint: endpoint, Audience: endpoint},
				},
			},
			APIVersion:      strings.TrimSpace(opts.APIVersion),
			Retry:           policy.RetryOptions{MaxRetries: -1, TryTimeout: timeout},
			PerCallPolicies: []policy.Policy{requestLogPolicy{}},
			Telemetry:       policy.TelemetryOptions{ApplicationID: "modelmap"},
		},
		DisableRPRegistration: true,
	}
	if opts.Transport != nil {
		clientOpts.Transport = opts.Transport
	}

	models, err := armcognitiveservices.NewModelsClient(subscription, Credential(ts), clientOpts)
	if err != nil {
		return nil, fmt.Errorf("create models client: %w", err)
	}
	return &Client{Subscription: subscription, models: models}, nil
}

// ListModels returns every model descriptor the region reports, following nextLink pages.
func (c *Client) ListModels(ctx context.Context, region string) ([]catalog.Descriptor, error) {
	var out []catalog.Descriptor
	pager := c.models.NewListPager(region, nil)
	for page := 0; pager.More(); page++ {
		if page >= maxPages {
			return nil, fmt.Errorf("list models in %s: more than %d pages", region, maxPages)
		}
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list models in %s: %w", region, condense(err))
		}
		out = append(out, descriptors(resp.Value)...)
	}
	return out, nil
}

// descriptors maps SDK models to catalog descriptors. Entries without a model are skipped.
func descriptors(models []*armcognitiveservices.Model) []catalog.Descriptor {
	out := make([]catalog.Descriptor, 0, len(models))
	for _, item := range models {
		if item == nil || item.Model == nil {
			continue
		}
		m := item.Model
		d := catalog.Descriptor{
			Format:  deref(m.Format),
			Name:    deref(m.Name),
			Version: deref(m.Version),
		}
		if len(m.Capabilities) > 0 {
			d.Capabilities = make(map[string]string, len(m.Capabilities))
			for k, v := range m.Capabilities {
				d.Capabilities[k] = deref(v)
			}
		}
		for _, sku := range m.SKUs {
			if sku != nil {
				d.SKUs = append(d.SKUs, deref(sku.Name))
			}
		}
		out = append(out, d)
	}
	return out
}

// condense turns an SDK response error into an *APIError carrying the ARM
// error code and message. Other errors are returned unchanged.
func condense(err error) error {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return err
	}
	apiErr := &APIError{StatusCode: respErr.StatusCode, Code: respErr.ErrorCode, Err: respErr}
	if respErr.RawResponse != nil {
		if body, perr := azruntime.Payload(respErr.RawResponse); perr == nil {
			apiErr.Message = strings.TrimSpace(gjson.GetBytes(body, "error.message").String())
			if apiErr.Code == "" {
				apiErr.Code = gjson.GetBytes(body, "error.code").String()
			}
		}
	}
	return apiErr
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// requestLogPolicy writes each control-plane exchange to the log file.
type requestLogPolicy struct{}

func (requestLogPolicy) Do(req *policy.Request) (*http.Response, error) {
	raw := req.Raw()
	region := regionFromPath(raw.URL.Path)
	logging.LogRequest("out", region, raw.Method+" "+raw.URL.Path, nil)

	resp, err := req.Next()
	if err != nil {
		logging.LogRequest("in", region, raw.URL.Path, err)
		return nil, err
	}
	logging.LogRequest("in", region, resp.Status, nil)
	return resp, nil
}

// regionFromPath returns the segment after "locations" in an ARM path, or "".
func regionFromPath(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if strings.EqualFold(parts[i], "locations") {
			return parts[i+1]
		}
	}
	return ""
}
