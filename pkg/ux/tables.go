// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"fmt"
	"io"
	"strconv"

	"github.com/luxfi/autodeploy/pkg/deployer"
	"github.com/luxfi/autodeploy/pkg/distribution"
	"github.com/luxfi/autodeploy/pkg/models"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// NewTable returns a table writing to w with the given header and row
// alignment.
func NewTable(w io.Writer, headers []string, align tw.Align) *tablewriter.Table {
	table := tablewriter.NewTable(w)
	anyHeaders := make([]any, len(headers))
	for i, h := range headers {
		anyHeaders[i] = h
	}
	table.Header(anyHeaders...)
	table.Configure(func(config *tablewriter.Config) {
		config.Row.Alignment.Global = align
	})
	return table
}

// PrintNetworks lists networks with the 1-based index used to select them.
func (ul *UserLog) PrintNetworks(mode string, networks []models.Network) {
	ul.PrintToUser("Available %s networks:", mode)
	table := NewTable(ul.writer, []string{"#", "Name", "RPC URL", "Explorer"}, tw.AlignLeft)
	for i, n := range networks {
		_ = table.Append([]string{strconv.Itoa(i + 1), n.Name, n.RPCURL, n.Explorer})
	}
	_ = table.Render()
}

// PrintDeployment shows where the token landed.
func (ul *UserLog) PrintDeployment(d *deployer.Deployment) {
	ul.PrintToUser("")
	ul.GreenCheckmarkToUser("Contract deployed successfully!")
	table := NewTable(ul.writer, []string{"Field", "Value"}, tw.AlignLeft)
	rows := [][]string{
		{"Token Name", d.Token.Name},
		{"Token Symbol", d.Token.Symbol},
		{"Token Supply", d.Token.Supply.String()},
		{"Network", d.Network.Name},
		{"Contract Address", d.Address.Hex()},
		{"Transaction", d.TxHash.Hex()},
		{"Explorer", d.ExplorerURL},
		{"Gas Used", ConvertToStringWithThousandSeparator(d.GasUsed)},
	}
	for _, row := range rows {
		_ = table.Append(row)
	}
	_ = table.Render()
}

// PrintPlan lists the planned transfers and their exact total.
func (ul *UserLog) PrintPlan(entries []distribution.Entry, symbol, total string) {
	ul.PrintToUser("")
	ul.PrintToUser("Distribution Plan:")
	table := NewTable(ul.writer, []string{"#", "Address", "Amount (" + symbol + ")"}, tw.AlignLeft)
	for i, e := range entries {
		_ = table.Append([]string{strconv.Itoa(i + 1), e.Address, e.Amount})
	}
	_ = table.Render()
	ul.PrintToUser("Total to distribute: %s %s", total, symbol)
}

// PrintSummary reports how the distribution went. failedFile is empty when
// no failure record was written.
func (ul *UserLog) PrintSummary(result distribution.Result, failedFile string) {
	ul.PrintToUser("")
	ul.PrintToUser("Distribution Summary:")
	ul.GreenCheckmarkToUser("Successful: %d", result.SuccessCount)
	ul.RedXToUser("Failed: %d", result.FailedCount())
	if result.FailedCount() == 0 {
		return
	}
	table := NewTable(ul.writer, []string{"#", "Address", "Amount", "Status", "Detail"}, tw.AlignLeft)
	for _, o := range result.Failed {
		detail := o.Reason()
		if detail == "" && o.TxHash != nil {
			detail = o.TxHash.Hex()
		}
		_ = table.Append([]string{fmt.Sprint(o.Index + 1), o.Entry.Address, o.Entry.Amount, o.State.String(), detail})
	}
	_ = table.Render()
	if failedFile != "" {
		ul.Warn("Failed transactions saved to %s", failedFile)
	}
}
