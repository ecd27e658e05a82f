/*
Copyright 2024 The GeoSys Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package setting

const (
	ProductName = "optimizador-mapas"

	// run modes
	DebugMode   = "debug"
	ReleaseMode = "release"
	TestMode    = "test"
)

// environment variable keys
const (
	ENVMode      = "MODE"
	ENVPort      = "PORT"
	ENVWorkerURL = "WORKER_URL"

	ENVS3Endpoint  = "S3_ENDPOINT"
	ENVS3AccessKey = "S3_ACCESS_KEY"
	ENVS3SecretKey = "S3_SECRET_KEY"
	ENVS3Region    = "S3_REGION"
	ENVS3Insecure  = "S3_INSECURE"

	ENVRedisHost     = "REDIS_HOST"
	ENVRedisPort     = "REDIS_PORT"
	ENVRedisUserName = "REDIS_USERNAME"
	ENVRedisPassword = "REDIS_PASSWORD"
	ENVRedisDB       = "REDIS_DB"

	ENVTaskQueueName   = "TASK_QUEUE_NAME"
	ENVDispatchWorkers = "DISPATCH_WORKERS"

	ENVTrackerBucket = "TRACKER_BUCKET"
	ENVTrackerFile   = "TRACKER_FILE"

	ENVScanIntervalMinutes = "SCAN_INTERVAL_MINUTES"
	ENVScanInputBucket     = "SCAN_INPUT_BUCKET"
	ENVScanOutputBucket    = "SCAN_OUTPUT_BUCKET"
	ENVScanMaxFiles        = "SCAN_MAX_FILES"
	ENVScanParts           = "SCAN_PARTS"
)

// pipeline constants, kept in lockstep with the legacy processor
const (
	// TargetDPI is the rasterization and output density for every
	// intermediate JPEG and the final PDF pages.
	TargetDPI = 80

	// MaxFileSize is the ceiling for the compressed intermediate image, 30 MiB.
	MaxFileSize = 31457280

	// MaxMegapixels triggers a pre-compression downscale for oversized scans.
	MaxMegapixels = 20

	InitialJPEGQuality = 95
	MinJPEGQuality     = 90
	JPEGQualityStep    = 5

	MinResizeFactor  = 0.5
	ResizeFactorStep = 0.05
)

const (
	DefaultTrackerBucket = "migracion-davincci"
	DefaultTrackerFile   = "lista_procesados_completos_mapas.txt"

	DefaultTaskQueueName   = "optimizador:tasks"
	DefaultDispatchWorkers = 4

	DefaultMaxFiles        = 5
	DefaultEnqueueParts    = 5
	DefaultProcessingParts = 2
)
