package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/uniewms/carrierboard/internal/freight"
)

// usStates lists state codes for filter and coverage dropdowns.
var usStates = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

// loadErrorMessage maps an upstream error to an inline page message.
// Validation messages from the API are shown verbatim; transport
// failures collapse to a generic load error.
func loadErrorMessage(what string, err error) string {
	var apiErr *freight.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "failed to load " + what
}

// actionErrorMessage maps an upstream error to a post-redirect message.
func actionErrorMessage(err error) string {
	var apiErr *freight.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "request failed, please try again"
}

// redirectWithError redirects back to a page with an inline error message.
func redirectWithError(w http.ResponseWriter, r *http.Request, path, msg string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

// redirectWithSuccess redirects back to a page with a confirmation message.
func redirectWithSuccess(w http.ResponseWriter, r *http.Request, path, msg string) {
	http.Redirect(w, r, path+"?success="+url.QueryEscape(msg), http.StatusSeeOther)
}

// flashFromQuery fills PageData's Error and Success from redirect params.
func flashFromQuery(pd *PageData, r *http.Request) {
	pd.Error = r.URL.Query().Get("error")
	pd.Success = r.URL.Query().Get("success")
}
