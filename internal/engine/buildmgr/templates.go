package buildmgr

import (
	"fmt"
	"strings"

	"go.trai.ch/crusader/internal/core/domain"
)

const (
	// MakeHeaderMarker delimits the generated region of Make.header.
	MakeHeaderMarker = "# DO NOT DELETE THIS LINE -- Code Crusader depends on it."

	// InsertMarker is replaced by the generated data in CMake.header and QMake.header.
	InsertMarker = "# Code Crusader inserts here"
)

const generatedWarning = "# Generated by crusader from the project's file list. Do not edit.\n"

const libTargetWarning = "# The library targets below are generated from the project's libraries.\n\n"

const libTargetTemplate = ".PHONY : %[1]s\n%[1]s :\n\t@cd %[2]s && ${MAKE}\n"

const subProjectScript = "#!/bin/sh\n%s\n%s\n"

const makeHeaderInit = `# Edit this file to define constants and custom build targets.
# Run "crusader edit-config" to open it from anywhere in the project.

# Directories to search for header files

SEARCHDIRS := -I${CURDIR}

# makemake variables

LINKER       := g++
DEPENDFLAGS  := -g -Wall ${SEARCHDIRS}
TOUCHHEADERS := ${CURDIR}/*.h

# C

CC     := gcc
CFLAGS  = ${DEPENDFLAGS}

%.o : %.c
	${CC} ${CPPFLAGS} ${CFLAGS} -c $< -o $@

# C++

CXX      := g++
CXXFLAGS  = ${DEPENDFLAGS}

%.o : %.cc
	${CXX} ${CPPFLAGS} ${CXXFLAGS} -c $< -o $@

%.o : %.cpp
	${CXX} ${CPPFLAGS} ${CXXFLAGS} -c $< -o $@
`

const makeFilesInit = `# Targets are listed as @name, source files as .suffix root.
# crusader rewrites this file from the project's file list.
`

const cmakeHeaderInit = `# Edit this file to configure CMake.
# The insert marker below is replaced by the project's sources and target.

cmake_minimum_required(VERSION 3.10)

project(%s)

` + InsertMarker + "\n"

const qmakeHeaderInit = `# Edit this file to configure qmake.
# The insert marker below is replaced by the project's sources and target.

TEMPLATE = app
CONFIG  += warn_on debug

` + InsertMarker + "\n"

// headerInitText returns the text a missing header file is recreated with.
func headerInitText(method domain.BuildMethod, target string) string {
	switch method {
	case domain.MethodMakemake:
		return makeHeaderInit
	case domain.MethodCMake:
		return fmt.Sprintf(cmakeHeaderInit, firstTarget(target))
	case domain.MethodQMake:
		return qmakeHeaderInit
	default:
		return ""
	}
}

func firstTarget(target string) string {
	cfg := domain.BuildConfig{TargetName: target}
	if targets := cfg.Targets(); len(targets) > 0 {
		return targets[0]
	}
	return "project"
}

// SpliceMakeHeader regenerates the library targets between the two marker lines of a
// Make.header. Text before the first marker and after the second is kept verbatim.
// Without a marker the whole text is kept, trimmed, and a fresh marker block is appended.
func SpliceMakeHeader(text string, libs []domain.Library) string {
	var b strings.Builder

	start := strings.Index(text, MakeHeaderMarker)
	if start >= 0 {
		b.WriteString(text[:start])
	} else if trimmed := strings.TrimSpace(text); trimmed != "" {
		b.WriteString(trimmed)
		b.WriteString("\n\n")
	}

	b.WriteString(MakeHeaderMarker)
	b.WriteString("\n\n")
	b.WriteString(libTargetWarning)
	for _, lib := range libs {
		fmt.Fprintf(&b, libTargetTemplate, lib.File, lib.Project)
	}
	b.WriteString("\n")
	b.WriteString(MakeHeaderMarker)

	if start >= 0 {
		rest := text[start+len(MakeHeaderMarker):]
		if end := strings.Index(rest, MakeHeaderMarker); end >= 0 {
			b.WriteString(rest[end+len(MakeHeaderMarker):])
			return b.String()
		}
	}
	b.WriteString("\n")
	return b.String()
}

// makeFilesContent builds Make.files from the target list and the file tree text.
func makeFilesContent(cfg domain.BuildConfig, text string) string {
	var b strings.Builder
	b.WriteString(generatedWarning)
	for _, target := range cfg.Targets() {
		b.WriteString("@" + target + "\n")
	}
	b.WriteString("\n")
	b.WriteString(text)
	if cfg.DepListExpr != "" {
		b.WriteString("\nliteral: " + cfg.DepListExpr + "\n")
	}
	return b.String()
}

// insertData replaces the insert marker in header with data, or appends data when
// the header has no marker. The result starts with the generated-file warning.
func insertData(header, data string) string {
	if strings.Contains(header, InsertMarker) {
		return generatedWarning + strings.Replace(header, InsertMarker, data, 1)
	}
	if header != "" && !strings.HasSuffix(header, "\n") {
		header += "\n"
	}
	return generatedWarning + header + data + "\n"
}

func fileList(files []string) string {
	var b strings.Builder
	for _, f := range files {
		b.WriteString(" " + f)
	}
	return b.String()
}

func cmakeData(target string, src domain.SourceData) string {
	return fmt.Sprintf("set(SRCS%s)\nset(HDRS%s)\nadd_executable(%s ${SRCS} ${HDRS})",
		fileList(src.Sources), fileList(src.Headers), firstTarget(target))
}

func qmakeData(target string, src domain.SourceData) string {
	return fmt.Sprintf("TARGET = %s\nSOURCES +=%s\nHEADERS +=%s",
		firstTarget(target), fileList(src.Sources), fileList(src.Headers))
}

// UpdateMakeDependCmd proposes the dependency scan command after the build method
// changes from oldMethod to newMethod. It reports false when the command should be
// kept, which includes switching to Manual: the other methods' inputs still exist.
func UpdateMakeDependCmd(oldMethod, newMethod domain.BuildMethod) (bool, string) {
	if oldMethod == newMethod || newMethod == domain.MethodManual {
		return false, ""
	}
	return true, newMethod.DefaultDependCommand()
}
