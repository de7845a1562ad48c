package fetch

import (
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// HTTPOnlyRedirects follows at most max redirects and refuses any target that
// is not http or https.
func HTTPOnlyRedirects(max int) resty.RedirectPolicy {
	return resty.RedirectPolicyFunc(func(r1 *http.Request, via []*http.Request) error {
		if r1.URL.Scheme != "http" && r1.URL.Scheme != "https" {
			return fmt.Errorf("refusing redirect to %s", r1.URL.Redacted())
		}

		if len(via) >= max {
			return fmt.Errorf("stopped after %d redirects", max)
		}

		return nil
	})
}
