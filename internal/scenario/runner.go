package scenario

import (
	"errors"
	"fmt"
	"time"

	"github.com/hance08/banksim/internal/bank"
	"github.com/hance08/banksim/internal/client"
	"github.com/hance08/banksim/internal/constants"
	"github.com/hance08/banksim/internal/service"
	"github.com/hance08/banksim/internal/utils"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

// ErrBalanceMismatch fails an expect_balance step.
var ErrBalanceMismatch = errors.New("balance mismatch")

// Options are the session settings a scenario may override.
type Options struct {
	Start    time.Time
	Step     time.Duration
	Defaults bank.Config
	Logger   *pterm.Logger
}

// Outcome is the result of one step.
type Outcome struct {
	Index    int
	Op       string
	Detail   string
	Expected string
	Observed string
	Err      error
	Passed   bool
}

type Report struct {
	Name       string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []Outcome
}

func (r *Report) Passed() bool {
	return r.Failed() == 0
}

func (r *Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Passed {
			n++
		}
	}
	return n
}

// Runner executes scenario steps against one session and keeps the aliases
// steps use for clients and accounts.
type Runner struct {
	svc      *service.Service
	clients  map[string]string
	accounts map[string]string
}

// NewSession builds a fresh service for sc, taking the clock from the
// scenario when it names one.
func NewSession(sc *Scenario, opts Options) (*service.Service, error) {
	start, step := opts.Start, opts.Step
	if sc.Clock.Start != "" {
		t, err := time.Parse(time.RFC3339, sc.Clock.Start)
		if err != nil {
			return nil, fmt.Errorf("clock.start %q: %w", sc.Clock.Start, ErrInvalidScenario)
		}
		start = t
	}
	if sc.Clock.Step > 0 {
		step = sc.Clock.Step
	}
	return service.New(start, step, opts.Defaults, opts.Logger), nil
}

func NewRunner(svc *service.Service) *Runner {
	return &Runner{
		svc:      svc,
		clients:  make(map[string]string),
		accounts: make(map[string]string),
	}
}

// Run validates the scenario, sets up its banks and clients and then plays
// every step. Validation and setup failures abort with an error; step failures are recorded in the
// report and the run continues.
func (r *Runner) Run(sc *Scenario) (*Report, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	report := &Report{Name: sc.Name, StartedAt: time.Now()}

	if err := r.setup(sc); err != nil {
		return nil, err
	}

	for i, st := range sc.Steps {
		report.Outcomes = append(report.Outcomes, r.play(i+1, st))
	}

	report.FinishedAt = time.Now()
	return report, nil
}

// ClientID resolves a client key, or returns it unchanged.
func (r *Runner) ClientID(key string) string {
	if id, ok := r.clients[key]; ok {
		return id
	}
	return key
}

// AccountID resolves an account alias, or returns it unchanged so steps can
// name raw ids.
func (r *Runner) AccountID(alias string) string {
	if id, ok := r.accounts[alias]; ok {
		return id
	}
	return alias
}

// Aliases maps account ids back to the aliases that opened them.
func (r *Runner) Aliases() map[string]string {
	out := make(map[string]string, len(r.accounts))
	for alias, id := range r.accounts {
		out[id] = alias
	}
	return out
}

func (r *Runner) setup(sc *Scenario) error {
	for _, bs := range sc.Banks {
		cfg, err := bankConfig(r.svc.Defaults(), bs)
		if err != nil {
			return err
		}
		if err := r.svc.NewBank(bs.Name, cfg); err != nil {
			return fmt.Errorf("bank %q: %w", bs.Name, err)
		}
	}

	for _, cs := range sc.Clients {
		id, err := r.svc.NewClient(cs.Name, cs.Surname, client.Optional{Address: cs.Address, Passport: cs.Passport})
		if err != nil {
			return fmt.Errorf("client %q: %w", cs.Key, err)
		}
		r.clients[cs.Key] = id
	}
	return nil
}

func bankConfig(defaults bank.Config, bs BankSpec) (bank.Config, error) {
	cfg := defaults
	override := func(field, raw string, dst *decimal.Decimal) error {
		if raw == "" {
			return nil
		}
		d, err := utils.ParseAmount(raw)
		if err != nil {
			return fmt.Errorf("bank %q %s: %v: %w", bs.Name, field, err, ErrInvalidScenario)
		}
		*dst = d
		return nil
	}

	if err := override("interest_rate", bs.InterestRate, &cfg.InterestRate); err != nil {
		return bank.Config{}, err
	}
	if err := override("credit_fee", bs.CreditFee, &cfg.CreditFee); err != nil {
		return bank.Config{}, err
	}
	if err := override("suspicious_limit", bs.SuspiciousLimit, &cfg.SuspiciousLimit); err != nil {
		return bank.Config{}, err
	}
	if bs.DepositTerm > 0 {
		cfg.DepositTerm = bs.DepositTerm
	}
	return cfg, nil
}

func (r *Runner) play(index int, st Step) Outcome {
	out := Outcome{
		Index:    index,
		Op:       st.Op,
		Detail:   st.Describe(),
		Expected: st.ExpectError,
	}

	err := r.exec(st)
	out.Err = err
	out.Observed = ErrorName(err)

	switch {
	case errors.Is(err, ErrBalanceMismatch):
		out.Passed = false
	case st.ExpectError == "":
		out.Passed = err == nil
	default:
		out.Passed = err != nil && matches(st.ExpectError, err)
	}
	return out
}

func (r *Runner) exec(st Step) error {
	switch st.Op {
	case constants.OpOpen:
		return r.open(st)

	case constants.OpTopUp:
		amount, err := stepAmount("amount", st.Amount)
		if err != nil {
			return err
		}
		return r.svc.TopUp(r.AccountID(st.Account), amount)

	case constants.OpWithdraw:
		amount, err := stepAmount("amount", st.Amount)
		if err != nil {
			return err
		}
		return r.svc.Withdraw(r.ClientID(st.Client), r.AccountID(st.Account), amount)

	case constants.OpSend:
		amount, err := stepAmount("amount", st.Amount)
		if err != nil {
			return err
		}
		return r.svc.Send(r.ClientID(st.Client), r.AccountID(st.Account), r.AccountID(st.To), amount)

	case constants.OpBlacklist:
		return r.svc.AddToBlacklist(st.Bank, r.ClientID(st.Client))

	case constants.OpUpdateClient:
		opt := client.Optional{Address: st.Address, Passport: st.Passport}
		return r.svc.UpdateClientOptionalInfo(r.ClientID(st.Client), opt)

	case constants.OpConfigureBank:
		set, err := bankSettings(st)
		if err != nil {
			return err
		}
		return r.svc.ConfigureBank(st.Bank, set)

	case constants.OpTick:
		for i := 0; i < st.times(); i++ {
			r.svc.Tick()
		}
		return nil

	case constants.OpExpectBalance:
		want, err := stepAmount("amount", st.Amount)
		if err != nil {
			return err
		}
		snap, err := r.svc.Account(r.AccountID(st.Account))
		if err != nil {
			return err
		}
		if !snap.Balance.Equal(want) {
			return fmt.Errorf("balance %s, want %s: %w",
				utils.FormatAmount(snap.Balance), utils.FormatAmount(want), ErrBalanceMismatch)
		}
		return nil

	case constants.OpClose:
		err := r.svc.CloseAccount(r.ClientID(st.Client), r.AccountID(st.Account))
		if err == nil {
			delete(r.accounts, st.Account)
		}
		return err

	case constants.OpRemoveClient:
		err := r.svc.RemoveClient(r.ClientID(st.Client))
		if err == nil {
			delete(r.clients, st.Client)
		}
		return err
	}

	return fmt.Errorf("unknown op %q: %w", st.Op, ErrInvalidScenario)
}

func (r *Runner) open(st Step) error {
	var p bank.AccountParams
	var err error

	if p.InitialFunds, err = optionalAmount("initial_funds", st.InitialFunds); err != nil {
		return err
	}
	if p.InterestRate, err = optionalAmount("interest_rate", st.InterestRate); err != nil {
		return err
	}
	switch {
	case st.Maturity != "":
		t, err := time.Parse(time.RFC3339, st.Maturity)
		if err != nil {
			return fmt.Errorf("maturity %q: %w", st.Maturity, ErrInvalidScenario)
		}
		p.Maturity = &t
	case st.Term > 0:
		t := r.svc.Now().Add(st.Term)
		p.Maturity = &t
	}

	id, err := r.svc.NewAccount(r.ClientID(st.Client), st.Bank, st.Kind, p)
	if err != nil {
		return err
	}
	if st.Account != "" {
		r.accounts[st.Account] = id
	}
	return nil
}

func bankSettings(st Step) (service.BankSettings, error) {
	var set service.BankSettings
	var err error

	if set.InterestRate, err = optionalAmount("interest_rate", st.InterestRate); err != nil {
		return set, err
	}
	if set.CreditFee, err = optionalAmount("credit_fee", st.CreditFee); err != nil {
		return set, err
	}
	if set.SuspiciousLimit, err = optionalAmount("suspicious_limit", st.Limit); err != nil {
		return set, err
	}
	return set, nil
}

func stepAmount(field, raw string) (decimal.Decimal, error) {
	d, err := utils.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %v: %w", field, err, ErrInvalidScenario)
	}
	return d, nil
}

// optionalAmount parses a field that may be left out; empty means nil.
func optionalAmount(field, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := stepAmount(field, raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
