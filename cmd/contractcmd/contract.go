// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contractcmd

import (
	"time"

	"github.com/luxfi/autodeploy/pkg/application"
	"github.com/luxfi/autodeploy/pkg/constants"
)

var app *application.AutoDeploy

// headerDelay is how long the banner stays up before the flow starts.
var headerDelay = constants.HeaderDelay

// slowStepWarning is when a deploy stage is reported as slow.
const slowStepWarning = 30 * time.Second

const (
	networkFlag      = "network"
	nameFlag         = "name"
	symbolFlag       = "symbol"
	supplyFlag       = "supply"
	distributionFlag = "distribution"
	amountFlag       = "amount"
	yesFlag          = "yes"
	contractFlag     = "contract"
	fromFlag         = "from"
)
