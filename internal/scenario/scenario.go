package scenario

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hance08/banksim/internal/constants"
	"github.com/hance08/banksim/internal/utils"
	"github.com/spf13/viper"
)

var ErrInvalidScenario = errors.New("invalid scenario")

type Scenario struct {
	Name    string       `mapstructure:"name"`
	Clock   ClockSpec    `mapstructure:"clock"`
	Banks   []BankSpec   `mapstructure:"banks"`
	Clients []ClientSpec `mapstructure:"clients"`
	Steps   []Step       `mapstructure:"steps"`
}

// ClockSpec overrides the configured clock. Zero values keep the config.
type ClockSpec struct {
	Start string        `mapstructure:"start"`
	Step  time.Duration `mapstructure:"step"`
}

// BankSpec creates one bank. Empty scalars fall back to the configured
// bank defaults.
type BankSpec struct {
	Name            string        `mapstructure:"name"`
	InterestRate    string        `mapstructure:"interest_rate"`
	CreditFee       string        `mapstructure:"credit_fee"`
	SuspiciousLimit string        `mapstructure:"suspicious_limit"`
	DepositTerm     time.Duration `mapstructure:"deposit_term"`
}

// ClientSpec registers a client under Key, the name steps refer to it by.
type ClientSpec struct {
	Key      string  `mapstructure:"key"`
	Name     string  `mapstructure:"name"`
	Surname  string  `mapstructure:"surname"`
	Address  *string `mapstructure:"address"`
	Passport *string `mapstructure:"passport"`
}

type Step struct {
	Op           string        `mapstructure:"op"`
	Client       string        `mapstructure:"client"`
	Bank         string        `mapstructure:"bank"`
	Kind         string        `mapstructure:"kind"`
	Account      string        `mapstructure:"account"`
	To           string        `mapstructure:"to"`
	Amount       string        `mapstructure:"amount"`
	InitialFunds string        `mapstructure:"initial_funds"`
	Maturity     string        `mapstructure:"maturity"`
	Term         time.Duration `mapstructure:"term"`
	InterestRate string        `mapstructure:"interest_rate"`
	CreditFee    string        `mapstructure:"credit_fee"`
	Limit        string        `mapstructure:"suspicious_limit"`
	Times        int           `mapstructure:"times"`
	Address      *string       `mapstructure:"address"`
	Passport     *string       `mapstructure:"passport"`
	ExpectError  string        `mapstructure:"expect_error"`
}

// Load reads a scenario file. The format follows the file extension.
func Load(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	return decode(v)
}

// Parse reads a YAML scenario from r.
func Parse(r io.Reader) (*Scenario, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Scenario, error) {
	sc := &Scenario{}
	if err := v.Unmarshal(sc); err != nil {
		return nil, fmt.Errorf("unable to decode scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Validate checks the static shape of the scenario: known ops, known
// expectations, parseable amounts and unique client keys. Business rules are
// left to the run.
func (sc *Scenario) Validate() error {
	if sc.Clock.Start != "" {
		if _, err := time.Parse(time.RFC3339, sc.Clock.Start); err != nil {
			return fmt.Errorf("clock.start %q: %w", sc.Clock.Start, ErrInvalidScenario)
		}
	}

	seen := make(map[string]struct{}, len(sc.Clients))
	for i, c := range sc.Clients {
		if strings.TrimSpace(c.Key) == "" {
			return fmt.Errorf("client #%d has no key: %w", i+1, ErrInvalidScenario)
		}
		if _, dup := seen[c.Key]; dup {
			return fmt.Errorf("client key %q repeated: %w", c.Key, ErrInvalidScenario)
		}
		seen[c.Key] = struct{}{}
	}

	for i, st := range sc.Steps {
		if err := st.validate(); err != nil {
			return fmt.Errorf("step #%d (%s): %w", i+1, st.Op, err)
		}
	}
	return nil
}

func (st Step) validate() error {
	switch st.Op {
	case constants.OpTopUp, constants.OpWithdraw, constants.OpSend, constants.OpExpectBalance:
		if _, err := utils.ParseAmount(st.Amount); err != nil {
			return fmt.Errorf("%v: %w", err, ErrInvalidScenario)
		}
	case constants.OpOpen:
		if st.InitialFunds != "" {
			if _, err := utils.ParseAmount(st.InitialFunds); err != nil {
				return fmt.Errorf("initial_funds: %v: %w", err, ErrInvalidScenario)
			}
		}
		if st.InterestRate != "" {
			if _, err := utils.ParseAmount(st.InterestRate); err != nil {
				return fmt.Errorf("interest_rate: %v: %w", err, ErrInvalidScenario)
			}
		}
		if st.Maturity != "" {
			if _, err := time.Parse(time.RFC3339, st.Maturity); err != nil {
				return fmt.Errorf("maturity %q: %w", st.Maturity, ErrInvalidScenario)
			}
		}
	case constants.OpConfigureBank:
		if st.InterestRate == "" && st.CreditFee == "" && st.Limit == "" {
			return fmt.Errorf("nothing to configure: %w", ErrInvalidScenario)
		}
		for field, raw := range map[string]string{
			"interest_rate":    st.InterestRate,
			"credit_fee":       st.CreditFee,
			"suspicious_limit": st.Limit,
		} {
			if raw == "" {
				continue
			}
			if _, err := utils.ParseAmount(raw); err != nil {
				return fmt.Errorf("%s: %v: %w", field, err, ErrInvalidScenario)
			}
		}
	case constants.OpTick:
		if st.Times < 0 {
			return fmt.Errorf("times %d: %w", st.Times, ErrInvalidScenario)
		}
	case constants.OpBlacklist, constants.OpUpdateClient, constants.OpClose, constants.OpRemoveClient:
	default:
		return fmt.Errorf("unknown op %q: %w", st.Op, ErrInvalidScenario)
	}

	if st.ExpectError != "" {
		if _, ok := expectations[st.ExpectError]; !ok {
			return fmt.Errorf("unknown expect_error %q: %w", st.ExpectError, ErrInvalidScenario)
		}
	}
	return nil
}

// Describe renders a step as one short line for reports.
func (st Step) Describe() string {
	var parts []string
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, k+"="+v)
		}
	}
	add("client", st.Client)
	add("bank", st.Bank)
	add("kind", st.Kind)
	add("account", st.Account)
	add("to", st.To)
	add("amount", st.Amount)
	add("initial_funds", st.InitialFunds)
	if st.Op == constants.OpConfigureBank {
		add("interest_rate", st.InterestRate)
		add("credit_fee", st.CreditFee)
		add("suspicious_limit", st.Limit)
	}
	if st.Op == constants.OpTick {
		add("times", fmt.Sprint(st.times()))
	}
	return strings.Join(parts, " ")
}

func (st Step) times() int {
	if st.Times <= 0 {
		return 1
	}
	return st.Times
}
