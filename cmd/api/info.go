package main

import "net/http"

func (a *api) infoHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	guide := map[string]interface{}{
		"service": "Trustgate Email Validation",
		"version": "1.0.0",
		"capabilities": []string{
			"Syntax validation (RFC 5321 length limit)",
			"Disposable domain and lexical red-flag detection",
			"Trusted provider allowlist",
			"MX record verification (DNS-over-HTTPS)",
			"Domain resolution age proxy",
			"Admin elevation trust gate",
		},
	}
	writeJSON(w, http.StatusOK, guide)
}
