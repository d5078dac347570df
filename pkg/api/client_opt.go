package api

import (
	"encoding/base64"
	"net/http"
)

type oauth2Opt struct {
	token string
}

func OAuth2(prefix, token string) *oauth2Opt {
	return &oauth2Opt{token: prefix + " " + token}
}

func (opt *oauth2Opt) Do(client defaultClient, req *http.Request) {
	req.Header.Add("Authorization", opt.token)
}

type basicOpt struct {
	credentials string
}

// Basic builds an HTTP Basic authorization option from a client id/secret
// pair.
func Basic(id, secret string) *basicOpt {
	encoded := base64.StdEncoding.EncodeToString([]byte(id + ":" + secret))
	return &basicOpt{credentials: "Basic " + encoded}
}

func (opt *basicOpt) Do(client defaultClient, req *http.Request) {
	req.Header.Add("Authorization", opt.credentials)
}
