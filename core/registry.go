package core

import (
	"coach/pkg/ai"
	"coach/pkg/plan"

	"github.com/aws/aws-sdk-go/service/s3"
)

var Store *plan.Store
var Planner *ai.PlannerAgent

// set when an S3 bucket is configured; serves archived exports after restarts
var S3Client *s3.S3
var S3Bucket string
