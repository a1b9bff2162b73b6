// Command keygen generates an API key and prints a ready-to-paste entry
// for the GATEWAY_API_KEYS JSON array.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/nexisdev/mcp-cryptowallet-evm/internal/auth"
	"github.com/nexisdev/mcp-cryptowallet-evm/internal/domain"
)

func main() {
	tier := flag.String("tier", "free", "key tier: free or paid")
	scopes := flag.String("scopes", "", "comma-separated scopes, e.g. wallet:bridge,wallet:swap")
	label := flag.String("label", "generated key", "human-readable key label")
	flag.Parse()

	if !domain.ValidTier(*tier) {
		fmt.Fprintf(os.Stderr, "invalid tier %q: must be free or paid\n", *tier)
		os.Exit(1)
	}

	var scopeList []string
	for _, s := range strings.Split(*scopes, ",") {
		if s = strings.TrimSpace(s); s != "" {
			scopeList = append(scopeList, s)
		}
	}

	def := auth.APIKeyDefinition{
		Key:    "wk_" + strings.ReplaceAll(uuid.New().String(), "-", ""),
		Tier:   domain.Tier(*tier),
		Scopes: scopeList,
		Label:  *label,
	}

	entry, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode key entry: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("API Key: %s\n\n", def.Key)
	fmt.Println("Add this entry to the GATEWAY_API_KEYS JSON array:")
	fmt.Println(string(entry))
}
