package lib

import (
	"fmt"
	"net/url"
	"os"
)

// Wallet pass links are plain URL construction against the pass service;
// nothing here talks to the network.

func GoogleWalletPassURL(code string) string {
	base := os.Getenv("WALLET_PASS_HOST")
	if base == "" {
		base = "https://pay.google.com/gp/v/save"
	}
	return fmt.Sprintf("%s/%s", base, url.PathEscape(code))
}

func AppleWalletPassURL(ticketID uint, code string) string {
	apiHost := os.Getenv("API_HOST")
	return fmt.Sprintf("%s/api/tickets/%d/pass.pkpass?code=%s", apiHost, ticketID, url.QueryEscape(code))
}

type WalletLinks struct {
	Google string `json:"google"`
	Apple  string `json:"apple"`
}

func WalletPassLinks(ticketID uint, code string) WalletLinks {
	return WalletLinks{
		Google: GoogleWalletPassURL(code),
		Apple:  AppleWalletPassURL(ticketID, code),
	}
}
