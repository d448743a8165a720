// Package main is an operator terminal dashboard over a single village,
// polling the cmd/server JSON API and rendering village info, stock and
// outbound movements in the visual idiom of the teacher's cmd/cli. Grounded on the teacher's
// command-loop-plus-signal-handling shape in cmd/cli/main.go, adapted from
// a websocket push client to an HTTP poll client since cmd/server exposes
// no server push.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"villagecore/internal/domain"

	"github.com/google/uuid"
)

const (
	defaultServerAddr = "http://localhost:3001"
	cliVersion         = "1.0.0"
	cliName            = "Village Core CLI"
	pollInterval       = 3 * time.Second
)

// VillageState is the CLI's local view, refreshed by polling cmd/server.
type VillageState struct {
	Village   *domain.Village
	Movements []*domain.UnitMovement
}

// Client polls a village's state from the HTTP API and renders it.
type Client struct {
	serverAddr string
	playerID   string
	villageID  int64
	ui         *UI
	done       chan struct{}
}

func main() {
	fmt.Printf("%s v%s\n", cliName, cliVersion)
	fmt.Println("Type 'help' for available commands or 'quit' to exit")
	fmt.Println()

	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <village-id> [server-addr]", os.Args[0])
	}
	villageID, err := strconv.ParseInt(os.Args[1], 10, 64)
	if err != nil {
		log.Fatalf("invalid village id %q: %v", os.Args[1], err)
	}

	serverAddr := defaultServerAddr
	if len(os.Args) > 2 {
		serverAddr = os.Args[2]
	}

	client := &Client{
		serverAddr: serverAddr,
		playerID:   "cli-" + uuid.New().String()[:8],
		villageID:  villageID,
		ui:         NewUI(),
		done:       make(chan struct{}),
	}

	fmt.Printf("Player ID: %s, server: %s, village: %d\n\n", client.playerID, serverAddr, villageID)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	winResize := make(chan os.Signal, 1)
	signal.Notify(winResize, syscall.SIGWINCH)

	go client.pollLoop()

	go func() {
		<-interrupt
		fmt.Println("\nshutting down")
		close(client.done)
		os.Exit(0)
	}()

	go func() {
		for {
			select {
			case <-winResize:
				client.refreshDisplay()
			case <-client.done:
				return
			}
		}
	}()

	client.commandLoop()
}

func (c *Client) pollLoop() {
	c.refresh()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.refresh()
		}
	}
}

func (c *Client) refresh() {
	v, err := c.getVillage()
	if err != nil {
		c.ui.SetLastCommand("", errorText(err.Error()))
		c.refreshDisplay()
		return
	}
	movements, err := c.getMovements()
	if err != nil {
		movements = nil
	}
	c.ui.UpdateState(&VillageState{Village: v, Movements: movements})
	c.refreshDisplay()
}

func (c *Client) refreshDisplay() {
	fmt.Print("\033[H\033[2J")
	fmt.Println(c.ui.RenderFullDisplay())
}

func (c *Client) commandLoop() {
	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-c.done:
			return
		default:
		}

		fmt.Print("village> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		command := strings.TrimSpace(line)
		if command == "" {
			continue
		}

		result := c.execute(command)
		c.ui.SetLastCommand(command, result)
		c.refreshDisplay()
	}
}

func (c *Client) execute(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}

	switch fields[0] {
	case "quit", "exit":
		close(c.done)
		os.Exit(0)
		return ""
	case "help":
		return "commands: build <kind>, train <kind> <count>, attack <target> <unit:count,...>, support <target> <unit:count,...>, cancel <movementId>, refresh, quit"
	case "refresh":
		c.refresh()
		return "refreshed"
	case "build":
		if len(fields) != 2 {
			return errorText("usage: build <kind>")
		}
		return c.postBuild(fields[1])
	case "train":
		if len(fields) != 3 {
			return errorText("usage: train <kind> <count>")
		}
		return c.postTrain(fields[1], fields[2])
	case "attack":
		if len(fields) != 3 {
			return errorText("usage: attack <target-id> <unit:count,...>")
		}
		return c.postSend("attack", fields[1], fields[2])
	case "support":
		if len(fields) != 3 {
			return errorText("usage: support <target-id> <unit:count,...>")
		}
		return c.postSend("support", fields[1], fields[2])
	case "cancel":
		if len(fields) != 2 {
			return errorText("usage: cancel <movement-id>")
		}
		return c.postCancel(fields[1])
	default:
		return errorText("unknown command: " + fields[0])
	}
}

func (c *Client) villageURL(suffix string) string {
	return fmt.Sprintf("%s/api/v1/villages/%d%s", c.serverAddr, c.villageID, suffix)
}

func (c *Client) doJSON(method, url string, body interface{}) (*http.Response, error) {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Player-ID", c.playerID)

	return http.DefaultClient.Do(req)
}

func (c *Client) getVillage() (*domain.Village, error) {
	resp, err := c.doJSON(http.MethodGet, c.villageURL(""), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}
	var v domain.Village
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) getMovements() ([]*domain.UnitMovement, error) {
	resp, err := c.doJSON(http.MethodGet, c.villageURL("/movements"), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}
	var movements []*domain.UnitMovement
	if err := json.NewDecoder(resp.Body).Decode(&movements); err != nil {
		return nil, err
	}
	return movements, nil
}

func (c *Client) postBuild(kind string) string {
	resp, err := c.doJSON(http.MethodPost, c.villageURL("/build"), map[string]string{"building": kind})
	return c.summarize(resp, err)
}

func (c *Client) postTrain(kind, countStr string) string {
	count, err := strconv.Atoi(countStr)
	if err != nil {
		return errorText("invalid count: " + countStr)
	}
	resp, err2 := c.doJSON(http.MethodPost, c.villageURL("/train"), map[string]interface{}{"unit": kind, "count": count})
	return c.summarize(resp, err2)
}

// postSend parses a "kind:count,kind:count" unit spec and sends it as an
// attack or support movement.
func (c *Client) postSend(action, targetStr, unitsSpec string) string {
	targetID, err := strconv.ParseInt(targetStr, 10, 64)
	if err != nil {
		return errorText("invalid target id: " + targetStr)
	}

	units := map[string]int{}
	for _, part := range strings.Split(unitsSpec, ",") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			return errorText("invalid unit spec: " + part)
		}
		count, err := strconv.Atoi(kv[1])
		if err != nil {
			return errorText("invalid unit count: " + kv[1])
		}
		units[kv[0]] = count
	}

	resp, reqErr := c.doJSON(http.MethodPost, c.villageURL("/"+action),
		map[string]interface{}{"targetVillageId": targetID, "units": units})
	return c.summarize(resp, reqErr)
}

func (c *Client) postCancel(movementIDStr string) string {
	movementID, err := strconv.ParseInt(movementIDStr, 10, 64)
	if err != nil {
		return errorText("invalid movement id: " + movementIDStr)
	}
	url := fmt.Sprintf("%s/api/v1/movements/%d/cancel", c.serverAddr, movementID)
	resp, reqErr := c.doJSON(http.MethodPost, url, nil)
	return c.summarize(resp, reqErr)
}

func (c *Client) summarize(resp *http.Response, err error) string {
	if err != nil {
		return errorText(err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return errorText(decodeAPIError(resp).Error())
	}
	c.refresh()
	return "ok"
}

func decodeAPIError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return fmt.Errorf("request failed: %s", resp.Status)
	}
	return fmt.Errorf("%s", body.Error)
}
