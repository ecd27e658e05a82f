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

package s3

import (
	"bytes"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/geosysmlservis/optimizador-mapas/pkg/tool/log"
	fsutil "github.com/geosysmlservis/optimizador-mapas/pkg/util/fs"
)

const (
	DefaultRegion = "us-east-1"
)

type Client struct {
	*s3.S3
}

const downloadRetries = 3

func NewClient(endpoint, ak, sk, region string, insecure bool) (*Client, error) {
	creds := credentials.NewStaticCredentials(ak, sk, "")
	config := &aws.Config{
		Endpoint:         aws.String(endpoint),
		S3ForcePathStyle: aws.Bool(true),
		Credentials:      creds,
		DisableSSL:       aws.Bool(insecure),
	}
	if region != "" {
		config.Region = aws.String(region)
	} else {
		config.Region = aws.String(DefaultRegion)
	}
	session, err := session.NewSession(config)
	if err != nil {
		return nil, err
	}
	return &Client{s3.New(session)}, nil
}

// Validate the existence of bucket
func (c *Client) ValidateBucket(bucketName string) error {
	headBucketInput := &s3.HeadBucketInput{Bucket: aws.String(bucketName)}
	_, err := c.HeadBucket(headBucketInput)
	if err != nil {
		return fmt.Errorf("validate S3 error: %s", err.Error())
	}

	return nil
}

// Download the object to a local file
func (c *Client) Download(bucketName, objectKey, dest string) error {

	retry := 0
	var err error

	for retry < downloadRetries {
		opt := &s3.GetObjectInput{
			Bucket: aws.String(bucketName),
			Key:    aws.String(objectKey),
		}
		obj, err1 := c.GetObject(opt)
		if err1 != nil {
			if e, ok := err1.(awserr.Error); ok && e.Code() == s3.ErrCodeNoSuchKey {
				return fmt.Errorf("object %s not found in bucket %s, err: %v", objectKey, bucketName, err1)
			}

			log.Warnf("Failed to get object %s from s3, try again, err: %s", objectKey, err1)
			err = err1

			retry++
			continue
		}
		err = fsutil.SaveFile(obj.Body, dest)
		if err != nil {
			log.Errorf("Failed to save file to %s, err: %s", dest, err)
		}
		return err
	}

	return err
}

// GetObjectText downloads a small text object and returns its content.
// A missing object yields an empty string and no error.
func (c *Client) GetObjectText(bucketName, objectKey string) (string, error) {
	opt := &s3.GetObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectKey),
	}
	obj, err := c.GetObject(opt)
	if err != nil {
		if e, ok := err.(awserr.Error); ok && e.Code() == s3.ErrCodeNoSuchKey {
			return "", nil
		}
		return "", err
	}
	defer obj.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(obj.Body); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func detectMimetype(path string) string {
	fileext := filepath.Ext(path)
	if fileext == "" {
		return ""
	}
	return mime.TypeByExtension(fileext)
}

// Upload uploads a file from src to the bucket with the specified objectKey
func (c *Client) Upload(bucketName, src string, objectKey string) error {
	file, err := os.OpenFile(src, os.O_RDONLY, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	input := &s3.PutObjectInput{
		Body:   file,
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectKey),
	}
	mimetype := detectMimetype(src)
	if mimetype != "" {
		input.ContentType = &mimetype
	}
	_, err = c.PutObject(input)
	return err
}

// UploadText writes content as a plain text object.
func (c *Client) UploadText(bucketName, objectKey, content string) error {
	input := &s3.PutObjectInput{
		Body:        bytes.NewReader([]byte(content)),
		Bucket:      aws.String(bucketName),
		Key:         aws.String(objectKey),
		ContentType: aws.String("text/plain; charset=utf-8"),
	}
	_, err := c.PutObject(input)
	return err
}

// ListFiles with given prefix
func (c *Client) ListFiles(bucketName, prefix string, recursive bool) ([]string, error) {
	ret := make([]string, 0)

	input := &s3.ListObjectsInput{
		Bucket: aws.String(bucketName),
		Prefix: aws.String(prefix),
	}
	if !recursive {
		input.Delimiter = aws.String("/")
	}

	err := c.ListObjectsPages(input, func(page *s3.ListObjectsOutput, lastPage bool) bool {
		for _, item := range page.Contents {
			ret = append(ret, aws.StringValue(item.Key))
		}
		return true
	})
	if err != nil {
		log.Errorf("bucket [%s] listing objects with prefix [%v] failed, error: %v", bucketName, prefix, err)
		return nil, err
	}

	return ret, nil
}
