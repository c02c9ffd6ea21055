package views

import "github.com/pterm/pterm"

type SystemInfoItem struct {
	ConfigPath      string
	DBPath          string
	DBExists        bool // true = Found, false = Not Found
	AppDataDir      string
	ClockStart      string
	ClockStep       string
	InterestRate    string
	CreditFee       string
	SuspiciousLimit string
	DepositTerm     string
	LogLevel        string
}

func RenderSystemInfo(data SystemInfoItem) error {
	dbStatus := pterm.Green("Found")
	if !data.DBExists {
		dbStatus = pterm.Red("Not Found (Will be created)")
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"Database Path", data.DBPath},
		{"Database Status", dbStatus},
		{"AppData Directory", data.AppDataDir},
		{"Clock Start", data.ClockStart},
		{"Clock Step", data.ClockStep},
		{"Bank Interest Rate", data.InterestRate},
		{"Bank Credit Fee", data.CreditFee},
		{"Bank Suspicious Limit", data.SuspiciousLimit},
		{"Deposit Term", data.DepositTerm},
		{"Log Level", data.LogLevel},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
