// Package salesfile contiene las reglas puras de extracción de los archivos exportados
// por el sistema de origen: la cuadrícula sin tipos, el período del nombre de archivo,
// la máquina de estados que clasifica filas de "Försäljningsstatistik", la normalización
// de campos y el parser del registro de clientes ("Kundlista").
//
// No hace I/O: la carga del .xlsx vive en infrastructure/xlsx.
package salesfile
