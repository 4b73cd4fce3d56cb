// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var levelMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"panic": zapcore.PanicLevel,
	"fatal": zapcore.FatalLevel,
}

// Options 日志配置项
type Options struct {
	// Stdout 为 true 时输出到标准输出 忽略 Filename
	Stdout bool `config:"stdout" mapstructure:"stdout"`

	// Format 输出格式 可选 json/console 默认 console
	Format string `config:"format" mapstructure:"format"`

	// Filename 日志文件路径 备份文件会保存在同目录下
	Filename string `config:"filename" mapstructure:"filename"`

	// MaxSize 单文件最大大小（MB）
	MaxSize int `config:"max_size" mapstructure:"max_size"`

	// MaxAge 旧日志最长保留天数
	MaxAge int `config:"max_age" mapstructure:"max_age"`

	// MaxBackups 旧日志最多保留个数
	MaxBackups int `config:"max_backups" mapstructure:"max_backups"`

	// Level 日志级别 默认 info
	Level string `config:"level" mapstructure:"level"`
}

type Logger struct {
	sugared *zap.SugaredLogger
	writer  io.Writer
}

func (l *Logger) Writer() io.Writer {
	return l.writer
}

func (l *Logger) Debug(args ...any) {
	l.sugared.Debug(args...)
}

func (l *Logger) Debugf(template string, args ...any) {
	l.sugared.Debugf(template, args...)
}

func (l *Logger) Info(args ...any) {
	l.sugared.Info(args...)
}

func (l *Logger) Infof(template string, args ...any) {
	l.sugared.Infof(template, args...)
}

func (l *Logger) Warn(args ...any) {
	l.sugared.Warn(args...)
}

func (l *Logger) Warnf(template string, args ...any) {
	l.sugared.Warnf(template, args...)
}

func (l *Logger) Error(args ...any) {
	l.sugared.Error(args...)
}

func (l *Logger) Errorf(template string, args ...any) {
	l.sugared.Errorf(template, args...)
}

func (l *Logger) Sync() error {
	return l.sugared.Sync()
}

// New 根据 Options 创建 Logger 实例
func New(opt Options) *Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Local().Format("2006-01-02 15:04:05.000"))
	}
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	switch opt.Format {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var w zapcore.WriteSyncer
	if opt.Stdout || opt.Filename == "" {
		w = zapcore.AddSync(os.Stdout)
	} else {
		if err := os.MkdirAll(filepath.Dir(opt.Filename), os.ModePerm); err != nil {
			panic(err)
		}
		w = zapcore.AddSync(&lumberjack.Logger{
			Filename:   opt.Filename,
			MaxSize:    opt.MaxSize,
			MaxBackups: opt.MaxBackups,
			MaxAge:     opt.MaxAge,
			LocalTime:  true,
		})
	}

	level, ok := levelMap[opt.Level]
	if !ok {
		level = zapcore.InfoLevel
	}

	core := zapcore.NewCore(encoder, w, level)
	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2))
	return &Logger{
		sugared: l.Sugar(),
		writer:  w,
	}
}

var (
	mut    sync.RWMutex
	stdOpt = Options{Stdout: true, Format: "console", Level: "info"}
	std    = New(stdOpt)
)

// SetOptions 重置标准 Logger
func SetOptions(opt Options) {
	mut.Lock()
	defer mut.Unlock()

	stdOpt = opt
	std = New(opt)
}

func SetLevel(level string) {
	mut.Lock()
	defer mut.Unlock()

	stdOpt.Level = level
	std = New(stdOpt)
}

func GetOptions() Options {
	mut.RLock()
	defer mut.RUnlock()

	return stdOpt
}

func getStd() *Logger {
	mut.RLock()
	defer mut.RUnlock()

	return std
}

func Debug(args ...any) {
	getStd().Debug(args...)
}

func Debugf(template string, args ...any) {
	getStd().Debugf(template, args...)
}

func Info(args ...any) {
	getStd().Info(args...)
}

func Infof(template string, args ...any) {
	getStd().Infof(template, args...)
}

func Warn(args ...any) {
	getStd().Warn(args...)
}

func Warnf(template string, args ...any) {
	getStd().Warnf(template, args...)
}

func Error(args ...any) {
	getStd().Error(args...)
}

func Errorf(template string, args ...any) {
	getStd().Errorf(template, args...)
}

func Sync() error {
	return getStd().Sync()
}
