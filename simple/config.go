package simple

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
)

type Config struct {
	Name         string
	LogDirectory string
	ServerPort   int
	ServerDNS    string

	// Database: "postgres" (pgx) or "sqlite" (embedded).
	DBDriver   string
	RdsUser    string
	RdsHost    string
	RdsPort    string
	RdsName    string
	SqlitePath string

	// Completed-game archive.
	S3Bucket string
	S3Folder string

	// Defaults for new tables.
	MaxPlayers int
	VPTarget   int

	// Seconds a stalled player gets before the supervisor forces their turn.
	TurnTimeout int

	// Secret material keyed by purpose ("cookie" is the AES-GCM
	// cookie key, 32 bytes).
	ConfigKeys map[string][]byte

	Session *session.Session // Configured elsewhere.
}

var configs map[string]Config = map[string]Config{
	"local": {
		Name:         "local",
		LogDirectory: "/var/log/islanders",
		ServerPort:   9000,
		ServerDNS:    "localhost",
		DBDriver:     "sqlite",
		SqlitePath:   "/var/lib/islanders/islanders.db",
		MaxPlayers:   4,
		VPTarget:     10,
		TurnTimeout:  180,
	},
	"prod": {
		Name:         "prod",
		LogDirectory: "/var/log/islanders",
		ServerPort:   9000,
		ServerDNS:    "islanders.example.net",
		DBDriver:     "postgres",
		RdsUser:      "islanders",
		RdsHost:      "islanders-database.internal",
		RdsPort:      "5432",
		RdsName:      "islanders",
		S3Bucket:     "islanders-archive",
		S3Folder:     "prod",
		MaxPlayers:   4,
		VPTarget:     10,
		TurnTimeout:  180,
	},
}

// LoadConfig reads a key=value file, selects the stack named by its
// "stack" key, and applies any per-key overrides on top.
func LoadConfig(filename string) Config {
	configBytes, err := os.ReadFile(filename)

	now := time.Now().Format("2006-01-02T15:04:05.000Z")
	fmt.Printf("\n\n\n%s: Server Start\n", now)
	if err != nil {
		fmt.Printf("%s: LoadConfig err reading '%s', goodbye: %s\n", now, filename, err)
		os.Exit(1)
	}

	stackName := ""
	configVars := strings.TrimSpace(string(configBytes))
	for _, cfg := range strings.Split(configVars, "\n") {
		parts := strings.SplitN(cfg, "=", 2)
		if parts[0] == "stack" {
			stackName = parts[1]
			break
		}
	}
	if stackName == "" {
		fmt.Printf("%s: LoadConfig found no 'stack' in config.  goodbye.\n", now)
		os.Exit(1)
	}

	stack, ok := configs[stackName]
	if !ok {
		fmt.Printf("%s: LoadConfig unknown stack '%s' set in '%s', goodbye.\n",
			now, stackName, filename)
		os.Exit(1)
	}

	stack.ConfigKeys = map[string][]byte{
		// Dev-only fallback; real deployments set cookiekey.
		"cookie": []byte("islanders-dev-cookie-key-32bytes"),
	}

	for _, cfg := range strings.Split(configVars, "\n") {
		parts := strings.SplitN(cfg, "=", 2)
		if len(parts) != 2 {
			continue
		}
		switch parts[0] {
		case "logdir":
			stack.LogDirectory = parts[1]
		case "port":
			stack.ServerPort = atoiOr(parts[1], stack.ServerPort)
		case "dns":
			stack.ServerDNS = parts[1]
		case "dbdriver":
			stack.DBDriver = parts[1]
		case "dbhost":
			stack.RdsHost = parts[1]
		case "dbuser":
			stack.RdsUser = parts[1]
		case "dbname":
			stack.RdsName = parts[1]
		case "sqlitepath":
			stack.SqlitePath = parts[1]
		case "s3bucket":
			stack.S3Bucket = parts[1]
		case "maxplayers":
			stack.MaxPlayers = atoiOr(parts[1], stack.MaxPlayers)
		case "vptarget":
			stack.VPTarget = atoiOr(parts[1], stack.VPTarget)
		case "turntimeout":
			stack.TurnTimeout = atoiOr(parts[1], stack.TurnTimeout)
		case "cookiekey":
			stack.ConfigKeys["cookie"] = []byte(parts[1])
		case "myip":
			stack.ConfigKeys["myip"] = []byte(parts[1])
		}
	}

	now = time.Now().Format("2006-01-02T15:04:05.000Z")
	fmt.Printf("%s: LoadConfig '%s'\n", now, stackName)
	return stack
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
