// Package cli implements defundctl, the command line client of the
// crowdfunding ledger.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/moonman369/Crowd-Funding-Contract/internal/adapter/events"
	httpadapter "github.com/moonman369/Crowd-Funding-Contract/internal/adapter/http"
	"github.com/moonman369/Crowd-Funding-Contract/internal/auth"
	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
	"github.com/moonman369/Crowd-Funding-Contract/internal/db"
)

// Environment provides an abstraction around the execution environment
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
	Ctx    context.Context
}

func (env *Environment) print(v any) error {
	enc := json.NewEncoder(env.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type TokenCmd struct {
	Account domain.Address `arg:"" help:"the address the token identifies."`
	Secret  string         `required:"" env:"AUTH_JWT_SECRET" help:"the HS256 secret the service verifies tokens with."`
	TTL     time.Duration  `default:"24h" help:"token lifetime."`
	Custody domain.Address `default:"0x0000000000000000000000000000000000cf0001" env:"LEDGER_CUSTODY_ADDRESS" help:"the custody account of the ledger, which never gets a token."`
}

func (cmd *TokenCmd) Run(env *Environment) error {
	token, err := auth.GenerateJWT(cmd.Secret, cmd.Account, cmd.TTL, cmd.Custody)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(env.Stdout, token)
	return err
}

type TimeCmd struct{}

func (cmd *TimeCmd) Run(env *Environment, client *Client) error {
	resp, err := client.Time(env.Ctx)
	if err != nil {
		return err
	}
	return env.print(resp)
}

type InfoCmd struct{}

func (cmd *InfoCmd) Run(env *Environment, client *Client) error {
	resp, err := client.LedgerInfo(env.Ctx)
	if err != nil {
		return err
	}
	return env.print(resp)
}

type CreateCmd struct {
	Goal        uint64         `required:"" help:"funding goal in base units."`
	Deadline    time.Time      `xor:"deadline" help:"absolute deadline (RFC 3339)."`
	Duration    time.Duration  `xor:"deadline" help:"deadline relative to the ledger clock, e.g. 72h."`
	MetadataURI string         `required:"" name:"metadata-uri" help:"where the campaign description lives."`
	Owner       domain.Address `help:"campaign owner; defaults to the authenticated account."`
	DryRun      bool           `help:"only report the id the campaign would get."`
}

func (cmd *CreateCmd) Run(env *Environment, client *Client) error {
	deadline := cmd.Deadline
	if cmd.Duration > 0 {
		now, err := client.Time(env.Ctx)
		if err != nil {
			return err
		}
		deadline = now.Now.Add(cmd.Duration)
	}
	if deadline.IsZero() {
		return fmt.Errorf("one of --deadline or --duration is required")
	}
	req := httpadapter.CreateCampaignRequest{
		Goal:        cmd.Goal,
		Deadline:    deadline,
		MetadataURI: cmd.MetadataURI,
	}
	if !cmd.Owner.IsZero() {
		req.Owner = &cmd.Owner
	}
	resp, err := client.CreateCampaign(env.Ctx, req, cmd.DryRun)
	if err != nil {
		return err
	}
	return env.print(resp)
}

type DonateCmd struct {
	ID      uint64 `arg:"" help:"campaign id."`
	Amount  uint64 `arg:"" help:"amount in base units."`
	Approve bool   `help:"approve the custody account for amount first."`
}

func (cmd *DonateCmd) Run(env *Environment, client *Client) error {
	if cmd.Approve {
		info, err := client.LedgerInfo(env.Ctx)
		if err != nil {
			return err
		}
		if _, err = client.Approve(env.Ctx, info.Custody, cmd.Amount); err != nil {
			return err
		}
	}
	resp, err := client.Donate(env.Ctx, cmd.ID, cmd.Amount)
	if err != nil {
		return err
	}
	return env.print(resp)
}

type CollectCmd struct {
	ID uint64 `arg:"" help:"campaign id."`
}

func (cmd *CollectCmd) Run(env *Environment, client *Client) error {
	resp, err := client.Collect(env.Ctx, cmd.ID)
	if err != nil {
		return err
	}
	return env.print(resp)
}

type RefundCmd struct {
	ID uint64 `arg:"" help:"campaign id."`
}

func (cmd *RefundCmd) Run(env *Environment, client *Client) error {
	resp, err := client.Refund(env.Ctx, cmd.ID)
	if err != nil {
		return err
	}
	return env.print(resp)
}

type ShowCmd struct {
	ID            uint64 `arg:"" help:"campaign id."`
	Contributions bool   `help:"also list outstanding contributions."`
	Events        bool   `help:"also list the campaign's events."`
}

func (cmd *ShowCmd) Run(env *Environment, client *Client) error {
	campaign, err := client.Campaign(env.Ctx, cmd.ID)
	if err != nil {
		return err
	}
	if err = env.print(campaign); err != nil {
		return err
	}
	if cmd.Contributions {
		list, err := client.Contributions(env.Ctx, cmd.ID)
		if err != nil {
			return err
		}
		if err = env.print(list); err != nil {
			return err
		}
	}
	if cmd.Events {
		list, err := client.Events(env.Ctx, cmd.ID)
		if err != nil {
			return err
		}
		return env.print(list)
	}
	return nil
}

type ListCmd struct {
	Offset uint64 `help:"first campaign id to return."`
	Limit  uint64 `default:"100" help:"maximum number of campaigns."`
}

func (cmd *ListCmd) Run(env *Environment, client *Client) error {
	list, err := client.ListCampaigns(env.Ctx, cmd.Offset, cmd.Limit)
	if err != nil {
		return err
	}
	return env.print(list)
}

type CountCmd struct{}

func (cmd *CountCmd) Run(env *Environment, client *Client) error {
	n, err := client.CampaignCount(env.Ctx)
	if err != nil {
		return err
	}
	return env.print(httpadapter.CountResponse{Count: n})
}

type ApproveCmd struct {
	Spender domain.Address `arg:"" help:"the account allowed to spend."`
	Amount  uint64         `arg:"" help:"the new allowance."`
}

func (cmd *ApproveCmd) Run(env *Environment, client *Client) error {
	resp, err := client.Approve(env.Ctx, cmd.Spender, cmd.Amount)
	if err != nil {
		return err
	}
	return env.print(resp)
}

type TransferCmd struct {
	To     domain.Address `arg:"" help:"recipient."`
	Amount uint64         `arg:"" help:"amount in base units."`
}

func (cmd *TransferCmd) Run(env *Environment, client *Client) error {
	resp, err := client.Transfer(env.Ctx, cmd.To, cmd.Amount)
	if err != nil {
		return err
	}
	return env.print(resp)
}

type BalanceCmd struct {
	Account domain.Address `arg:"" help:"account to inspect."`
	Spender domain.Address `help:"also show the allowance granted to this spender."`
}

func (cmd *BalanceCmd) Run(env *Environment, client *Client) error {
	balance, err := client.Balance(env.Ctx, cmd.Account)
	if err != nil {
		return err
	}
	if err = env.print(httpadapter.BalanceResponse{Account: cmd.Account, Balance: balance}); err != nil {
		return err
	}
	if !cmd.Spender.IsZero() {
		allowance, err := client.Allowance(env.Ctx, cmd.Account, cmd.Spender)
		if err != nil {
			return err
		}
		return env.print(httpadapter.AllowanceResponse{Owner: cmd.Account, Spender: cmd.Spender, Allowance: allowance})
	}
	return nil
}

type SupplyCmd struct{}

func (cmd *SupplyCmd) Run(env *Environment, client *Client) error {
	supply, err := client.TotalSupply(env.Ctx)
	if err != nil {
		return err
	}
	return env.print(httpadapter.SupplyResponse{TotalSupply: supply})
}

type WatchCmd struct {
	RedisURL string `required:"" name:"redis-url" env:"REDIS_URL" help:"Redis server the ledger publishes to."`
	Channel  string `default:"events:ledger" env:"REDIS_CHANNEL" help:"event channel."`
}

// Run prints every published ledger event as one JSON line until
// interrupted.
func (cmd *WatchCmd) Run(env *Environment) error {
	logger := slog.New(slog.NewTextHandler(env.Stderr, nil))
	client, err := db.NewRedisClient(env.Ctx, cmd.RedisURL, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	enc := json.NewEncoder(env.Stdout)
	err = events.NewRedisSubscriber(client, cmd.Channel, logger).Subscribe(env.Ctx, func(e domain.Event) {
		_ = enc.Encode(e)
	})
	if env.Ctx.Err() != nil {
		return nil
	}
	return err
}

type CLI struct {
	Server    string `default:"http://localhost:8080" env:"DEFUND_SERVER" help:"ledger service base URL."`
	AuthToken string `name:"token" env:"DEFUND_TOKEN" help:"bearer token for state-changing commands."`

	Token    TokenCmd    `cmd:"" help:"Signs a development bearer token for an account."`
	Time     TimeCmd     `cmd:"" help:"Prints the ledger clock."`
	Info     InfoCmd     `cmd:"" help:"Prints the custody account and ledger rules."`
	Create   CreateCmd   `cmd:"" help:"Creates a campaign."`
	Donate   DonateCmd   `cmd:"" help:"Donates to a campaign from the authenticated account."`
	Collect  CollectCmd  `cmd:"" help:"Withdraws the collected funds of a successful campaign."`
	Refund   RefundCmd   `cmd:"" help:"Withdraws your donation from a failed campaign."`
	Show     ShowCmd     `cmd:"" help:"Shows a campaign."`
	List     ListCmd     `cmd:"" help:"Lists campaigns."`
	Count    CountCmd    `cmd:"" help:"Prints the number of campaigns."`
	Approve  ApproveCmd  `cmd:"" help:"Sets the allowance of a spender."`
	Transfer TransferCmd `cmd:"" help:"Transfers tokens."`
	Balance  BalanceCmd  `cmd:"" help:"Prints the token balance of an account."`
	Supply   SupplyCmd   `cmd:"" help:"Prints the token supply."`
	Watch    WatchCmd    `cmd:"" help:"Streams ledger events from Redis."`
}

// Run parses args, executes the selected command and returns the process
// exit code.
func Run(env Environment, args []string) int {
	app := CLI{}

	parser, err := kong.New(&app,
		kong.Name("defundctl"),
		kong.Description("crowdfunding ledger client"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Writers(env.Stdout, env.Stderr),
	)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return 2
	}

	cntx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return 2
	}

	if env.Ctx == nil {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		env.Ctx = ctx
	}
	cntx.Bind(NewClient(app.Server, app.AuthToken))

	if err = cntx.Run(&env); err != nil {
		fmt.Fprintln(env.Stderr, "defundctl:", err)
		return 1
	}
	return 0
}
