/*
Package lexsdk provides a client SDK for the lexdesk API.

# Overview

The lexdesk API backs the firm's public site and its staff back office. It
authenticates browsers with an HttpOnly session cookie and protects
state-changing requests with a double-submit CSRF token. SDKClient behaves
like the web app: it keeps both cookies in a jar and sends the CSRF token in
the X-CSRF-Token header on POST, PUT, PATCH and DELETE.

	client, err := lexsdk.NewSDKClient("https://api.example.com")

	// Public operations
	services, err := client.ListServices(ctx)
	id, err := client.SubmitContact(ctx, lexsdk.ContactRequest{...})

	// Staff operations
	_, err = client.Login(ctx, lexsdk.LoginRequest{Email: ..., Password: ..., Phone: ...})
	contacts, err := client.AdminListContacts(ctx)

A client without a CSRF cookie fetches one from /api/health before its
first state-changing request.

# Error Handling

Every non-2xx response is returned as an *APIError carrying the status code
and the server's message:

	_, err := client.Login(ctx, req)
	if lexsdk.StatusCode(err) == http.StatusUnauthorized {
		// wrong credentials
	}

# Wire Types

The request and response types in this package are also the types the
server encodes, so the OpenAPI document and the SDK stay in step.
*/
package lexsdk
