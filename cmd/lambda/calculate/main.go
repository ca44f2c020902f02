// Cost Calculation Lambda entry point
package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"car-cost-engine/internal/handlers"
	"car-cost-engine/internal/utils"
)

func main() {
	// Initialize logger
	_ = utils.InitLogger("info")
	defer utils.Sync()

	// Start Lambda
	lambda.Start(handlers.NewCalculateHandler().Handle)
}
